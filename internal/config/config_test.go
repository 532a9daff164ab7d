package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cellcount.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Error(t, cfg.Validate(), "dataset is required")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: 127.0.0.1:9000
dataset: ./data/od600.yaml
debounce: 350ms
cacheTTL: 0s
variant: light
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "./data/od600.yaml", cfg.Dataset)
	assert.Equal(t, 350*time.Millisecond, cfg.Debounce)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, "light", cfg.Variant)
	assert.Equal(t, 10*time.Second, cfg.Grace)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "dataset: a.yaml\nlisten: :80\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative debounce": func(c *Config) { c.Debounce = -time.Millisecond },
		"missing addr":      func(c *Config) { c.Addr = "" },
		"templates not dir": func(c *Config) { c.Templates = filepath.Join(os.TempDir(), "does-not-exist-cellcount") },
		"tiny chart":        func(c *Config) { c.ChartWidth = 10 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Dataset = "table.json"
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFlags_ApplyOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--dataset", "cli.json", "--debounce", "1s"}))

	cfg := Default()
	cfg.Addr = ":9999"
	flags.Apply(&cfg)

	assert.Equal(t, "cli.json", cfg.Dataset)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, ":9999", cfg.Addr, "unchanged flags keep file values")
	require.NoError(t, cfg.Validate())
}
