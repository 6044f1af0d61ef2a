package core

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config drives logging, asset resolution and parser strictness. It is
// usually decoded from an objview.toml file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// AssetBasePath is prepended to relative file locations.
	AssetBasePath string `toml:"asset_base_path"`
	// StrictNumbers rejects records holding non-numeric tokens instead of
	// storing NaN.
	StrictNumbers bool `toml:"strict_numbers"`
	// FetchTimeout bounds remote fetches, e.g. "10s".
	FetchTimeout Duration `toml:"fetch_timeout"`
	// Watch enables the fsnotify reloader of the asset manager.
	Watch bool `toml:"watch"`
}

// Duration is a time.Duration that decodes from a TOML string.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		AssetBasePath: ".",
		FetchTimeout:  Duration{30 * time.Second},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data into cfg, keeping the values already set
// for keys the document omits.
func ParseConfig(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.FetchTimeout.Duration < 0 {
		return fmt.Errorf("fetch_timeout must not be negative")
	}
	return nil
}

// Apply pushes the logging part of the configuration to the shared logger.
func (c Config) Apply() error {
	if c.LogLevel == "" {
		return nil
	}
	return SetLogLevel(c.LogLevel)
}
