package config // gofmt

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// UnlimitedDepth disables the path-depth policy.
const UnlimitedDepth = -1

type Config struct {
	URL        string `toml:"url"`
	MaxDepth   int32  `toml:"max_depth"`   // UnlimitedDepth crawls the whole site
	MaxRetries int    `toml:"max_retries"` // attempts per URL
	MaxPages   int    `toml:"max_pages"`   // 0 means no cap
	ReqTimeout int    `toml:"req_timeout"` // in seconds
	RetryDelay int    `toml:"retry_delay"` // in seconds
	AppTimeout int    `toml:"app_timeout"` // in seconds, 0 means no deadline
	UserAgent  string `toml:"user_agent"`
	OutputDir  string `toml:"output_dir"`
}

func NewConfig() *Config {
	return &Config{
		MaxDepth:   UnlimitedDepth,
		MaxRetries: 3,
		MaxPages:   0,
		ReqTimeout: 10,
		RetryDelay: 2,
		AppTimeout: 0,
		OutputDir:  ".",
	}
}

// Load decodes path over the defaults. A missing file is not an error; the
// returned bool reports whether the file was read.
func Load(path string) (*Config, bool, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return nil, false, eris.Wrapf(err, "decode config %s", path)
	}
	return cfg, true, nil
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return eris.Errorf("%q is not a valid http(s) url", c.URL)
	}
	if c.MaxRetries < 1 {
		return eris.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.MaxDepth < UnlimitedDepth {
		return eris.Errorf("max_depth must be >= %d, got %d", UnlimitedDepth, c.MaxDepth)
	}
	if c.ReqTimeout < 1 {
		return eris.Errorf("req_timeout must be positive, got %d", c.ReqTimeout)
	}
	if c.RetryDelay < 0 {
		return eris.Errorf("retry_delay must not be negative, got %d", c.RetryDelay)
	}
	if c.MaxPages < 0 {
		return eris.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	if c.AppTimeout < 0 {
		return eris.Errorf("app_timeout must not be negative, got %d", c.AppTimeout)
	}
	return nil
}
