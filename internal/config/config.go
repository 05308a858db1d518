// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"CALC_ADDR" envDefault:":8080"`

	// RemoteURL is the base URL of the calculation service.
	RemoteURL     string        `env:"CALC_REMOTE_URL,required"`
	RemotePath    string        `env:"CALC_REMOTE_PATH" envDefault:"/api/games/calculator"`
	RemoteTimeout time.Duration `env:"CALC_REMOTE_TIMEOUT" envDefault:"0s"`

	// StorePath is the SQLite file for saved builds. Empty disables saving.
	StorePath string `env:"CALC_STORE_PATH"`

	LogLevel  string `env:"CALC_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CALC_LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set win over the file.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
