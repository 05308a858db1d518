package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/wire"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "builds.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestSaveAndLoadBuild(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	in := &model.InputGame{
		ActivePlayer: model.Player{Runes: []catalog.RuneID{4}},
		EnemyPlayers: model.Enemies{{Level: 9, ChampionID: 3}},
		Dragons:      model.Dragons{AllyFire: 1},
	}
	in.ActivePlayer.Data.Items = []catalog.ItemID{100, 101}

	require.NoError(t, s.SaveBuild(ctx, "ABC123", in))
	got, err := s.LoadBuild(ctx, "ABC123")
	require.NoError(t, err)
	require.Equal(t, in, got)

	// Saving again replaces the build.
	in.Dragons.AllyFire = 4
	require.NoError(t, s.SaveBuild(ctx, "ABC123", in))
	got, err = s.LoadBuild(ctx, "ABC123")
	require.NoError(t, err)
	require.Equal(t, uint16(4), got.Dragons.AllyFire)
}

func TestLoadMissingBuild(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.LoadBuild(context.Background(), "NOPE00")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRequiresCode(t *testing.T) {
	s, _ := openStore(t)
	require.Error(t, s.SaveBuild(context.Background(), "", &model.InputGame{}))
}

func TestLoadCorruptBuild(t *testing.T) {
	s, path := openStore(t)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO builds (code, payload, updated_at) VALUES (?, ?, 0)`, "BAD000", []byte{0xff})
	require.NoError(t, err)

	_, err = s.LoadBuild(context.Background(), "BAD000")
	require.ErrorIs(t, err, wire.ErrInvalidVarint)
}
