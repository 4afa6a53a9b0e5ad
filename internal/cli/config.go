package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stagekit/pkg/api"
	"github.com/matzehuels/stagekit/pkg/format"
)

// Config is the optional config.toml. Flags override it.
type Config struct {
	// Precision is the default number of decimal places for "format round".
	Precision int `toml:"precision"`
	// RejectDuplicates fails loading on repeated asset ids.
	RejectDuplicates bool `toml:"reject_duplicates"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig configures the summary and diagram cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`
	// TTL overrides the per-entry lifetimes, e.g. "12h".
	TTL duration `toml:"ttl"`
	// RedisAddr switches to a shared Redis cache.
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings like "90m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Precision: format.DefaultPlaces,
		Cache:     CacheConfig{Enabled: true},
		Serve:     ServeConfig{Addr: api.DefaultAddr},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if cfg.Precision < 0 {
		return Config{}, fmt.Errorf("load config %s: precision must not be negative", path)
	}
	return cfg, nil
}
