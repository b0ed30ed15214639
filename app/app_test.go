package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sambeau/unitconv/config"
	"github.com/sambeau/unitconv/pkg/units"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.DataDir = dir
	cfg.History.File = filepath.Join(dir, "history.txt")
	cfg.History.SQLite = filepath.Join(dir, "history.db")
	cfg.Favorites.File = filepath.Join(dir, "favorites.txt")
	cfg.Shell.Color = false
	return cfg
}

func TestConvertRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	a := New(cfg, zaptest.NewLogger(t))
	defer a.Close()

	c, err := a.Convert(1000, "m", "km", units.ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Result)
	assert.Empty(t, c.Warnings)

	_, err = a.ConvertAny(1, "hp", "W")
	require.NoError(t, err)

	entries := a.History.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "m", entries[0].From)
	assert.Equal(t, "W", entries[1].To)

	data, err := os.ReadFile(cfg.History.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hp,W,1,745.7,")
}

func TestConvertErrorIsNotRecorded(t *testing.T) {
	a := New(testConfig(t), nil)
	_, err := a.Convert(1, "m", "kg", units.ScopeAll)
	require.Error(t, err)
	assert.Zero(t, a.History.Len())
}

func TestConvertHistoryWriteFailureIsAWarning(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.DataDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.History.File = filepath.Join(blocker, "history.txt")

	a := New(cfg, nil)
	c, err := a.ConvertAny(0, "C", "F")
	require.NoError(t, err)
	assert.Equal(t, 32.0, c.Result)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "history not saved")
	assert.Equal(t, 1, a.History.Len())
}

func TestSQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Backend = "sqlite"

	a := New(cfg, nil)
	_, err := a.ConvertAny(100000, "Pa", "bar")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	reopened := New(cfg, nil)
	defer reopened.Close()
	require.Equal(t, 1, reopened.History.Len())
	assert.Equal(t, "bar", reopened.History.Entries()[0].To)
}

func TestMagnitudeLimitFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Engine.MagnitudeWarning = 10
	a := New(cfg, nil)

	c, err := a.ConvertAny(11, "m", "km")
	require.NoError(t, err)
	assert.Len(t, c.Warnings, 1)
}

func TestBase(t *testing.T) {
	a := New(testConfig(t), nil)
	km, _ := a.Resolver.Resolve("km", units.ScopeAll)
	assert.Equal(t, "m", a.Base(km).Symbol)
	f, _ := a.Resolver.Resolve("F", units.ScopeAll)
	assert.Equal(t, "F", a.Base(f).Symbol)
}
