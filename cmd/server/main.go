package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/lol-damage-calculator/internal/config"
	"github.com/DoyleJ11/lol-damage-calculator/internal/fetch"
	"github.com/DoyleJ11/lol-damage-calculator/internal/httpapi"
	"github.com/DoyleJ11/lol-damage-calculator/internal/hub"
	"github.com/DoyleJ11/lol-damage-calculator/internal/logger"
	"github.com/DoyleJ11/lol-damage-calculator/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Left nil when saving is off so the hub sees a nil interface.
	var builds hub.Builds
	if cfg.StorePath != "" {
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		builds = st
	}

	sender := fetch.NewHTTPSender(cfg.RemoteURL, cfg.RemotePath, &http.Client{Timeout: cfg.RemoteTimeout})
	h := hub.NewHub(context.Background(), fetch.NewClient(sender), builds, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.SetupRoutes(h, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("remote", sender.URL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// Sessions save their builds before the store closes.
		done := make(chan struct{})
		h.Inbox() <- hub.ShutdownHub{Done: done}
		select {
		case <-done:
		case <-shutdownCtx.Done():
			log.Warn("hub shutdown timed out")
		}
		return err
	})
	return g.Wait()
}
