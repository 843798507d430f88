package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Database string `json:"database"`
	Delay    int    `json:"delay"`
	Nested   struct {
		Threshold float64 `json:"threshold"`
	} `json:"nested"`
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "app.json5")

	err := os.WriteFile(base, []byte(`{
		// comments are allowed
		database: "players.db",
		delay: 1000,
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "app.local.json5"), []byte(`{delay: 5}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, "players.db", cfg.Database)
	require.Equal(t, 5, cfg.Delay)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestLoadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "defaults.json5"), []byte(`{database: "other.db"}`), 0600)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	defaults := testConfig{Database: "players.db", Delay: 1000}
	defaults.Nested.Threshold = 90

	cfg, err := LoadWithDefaults("defaults.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, "other.db", cfg.Database)
	require.Equal(t, 1000, cfg.Delay)
	require.Equal(t, 90.0, cfg.Nested.Threshold)

	cfg, err = LoadWithDefaults("missing-entirely.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)
}

func TestLoadWithDefaultsAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.json5")
	err := os.WriteFile(path, []byte(`{delay: 5}`), 0600)
	require.NoError(t, err)

	cfg, err := LoadWithDefaults(path, testConfig{Database: "players.db", Delay: 1000})
	require.NoError(t, err)
	require.Equal(t, "players.db", cfg.Database)
	require.Equal(t, 5, cfg.Delay)
}
