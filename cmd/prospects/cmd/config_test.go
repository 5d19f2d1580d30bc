package cmd

import (
	"context"
	"os"
	"path/filepath"
	"prospects/internal/fetch"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "prospects.json5"))
	require.NoError(t, err)
	require.Equal(t, BACKEND_BADGER, config.Cache.Backend)
	require.Equal(t, 24*time.Hour, config.TTL())
	require.Equal(t, fetch.GateOptions{
		BaseDelay:      10 * time.Second,
		Jitter:         true,
		JitterFraction: 0.25,
	}, config.GateOptions())
	require.Len(t, config.Organizations, 1)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prospects.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		cache: { backend: "sqlite", path: "cache.db" },
		gate: { base_delay_seconds: 2.5, jitter: false },
		organizations: ["https://www.eliteprospects.com/team/1/anaheim-ducks/in-the-system"],
		season: 2027,
		log_level: "debug",
	}`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, BACKEND_SQLITE, config.Cache.Backend)
	require.Equal(t, "cache.db", config.Cache.Path)
	require.Equal(t, 86400, config.Cache.TtlSeconds)
	require.Equal(t, 2500*time.Millisecond, config.GateOptions().BaseDelay)
	require.False(t, config.GateOptions().Jitter)
	require.Equal(t, []string{"https://www.eliteprospects.com/team/1/anaheim-ducks/in-the-system"}, config.Organizations)
	require.Equal(t, 2027, config.Season)
	require.Equal(t, "progress.db", config.Snapshots.File)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prospects.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{ cache: { backend: "floppy" } }`), 0o644))

	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "floppy")
}

func TestNewAppWithMemoryCache(t *testing.T) {
	config := DefaultConfig()
	config.Cache.Backend = BACKEND_MEMORY
	config.Snapshots.File = filepath.Join(t.TempDir(), "progress.db")
	config.Season = 2027

	a, err := newApp(context.Background(), config)
	require.NoError(t, err)
	defer a.close()
	require.Equal(t, 2027, a.seasonEnd())

	days, err := a.snapshots.Days(context.Background())
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestNewAppWithSQLiteCache(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	config.Cache.Backend = BACKEND_SQLITE
	config.Cache.Path = filepath.Join(dir, "cache.db")
	config.Snapshots.File = filepath.Join(dir, "progress.db")

	a, err := newApp(context.Background(), config)
	require.NoError(t, err)
	a.close()
	require.FileExists(t, config.Cache.Path)
}
