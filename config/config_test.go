package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, int32(UnlimitedDepth), cfg.MaxDepth)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 10, cfg.ReqTimeout)
	assert.Equal(t, 2, cfg.RetryDelay)
	assert.Zero(t, cfg.MaxPages)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("url = \"https://site.test\"\nmax_depth = 2\nmax_pages = 50\n"), 0o600))

	cfg, found, err := Load(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://site.test", cfg.URL)
	assert.Equal(t, int32(2), cfg.MaxDepth)
	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 3, cfg.MaxRetries, "unset keys keep defaults")
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth = \"deep\""), 0o600))

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestSampleConfigDecodes(t *testing.T) {
	cfg, found, err := Load("config.toml")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.URL = "https://site.test"
	assert.NoError(t, cfg.Validate())

	bad := []func(c *Config){
		func(c *Config) { c.URL = "ftp://site.test" },
		func(c *Config) { c.URL = "" },
		func(c *Config) { c.MaxRetries = 0 },
		func(c *Config) { c.MaxDepth = -2 },
		func(c *Config) { c.ReqTimeout = 0 },
		func(c *Config) { c.RetryDelay = -1 },
		func(c *Config) { c.MaxPages = -1 },
		func(c *Config) { c.AppTimeout = -1 },
	}
	for i, mutate := range bad {
		c := *cfg
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
