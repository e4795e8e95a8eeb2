package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the complete pagekit configuration.
type Config struct {
	Scroll   ScrollConfig   `toml:"scroll"`
	Search   SearchConfig   `toml:"search"`
	LazyLoad LazyLoadConfig `toml:"lazy_load"`
	Watch    WatchConfig    `toml:"watch"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ScrollConfig controls the scroll-to-top button.
type ScrollConfig struct {
	// Threshold is the offset in pixels past which the button is shown.
	Threshold int `toml:"threshold"`
	// Throttle is the minimum interval between scroll handler runs.
	Throttle Duration `toml:"throttle"`
}

// SearchConfig controls the search redirect.
type SearchConfig struct {
	// URLTemplate is the redirect target; %s receives the escaped term.
	URLTemplate string `toml:"url_template"`
}

// LazyLoadConfig controls the lazy-loading fallback.
type LazyLoadConfig struct {
	// ForceFallback attaches the observer fallback even when native lazy
	// loading is supported.
	ForceFallback bool `toml:"force_fallback"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last file change before a rerun.
	Debounce Duration `toml:"debounce"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format"`
}

// Duration is a time.Duration that reads from TOML strings like "100ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scroll: ScrollConfig{
			Threshold: 300,
			Throttle:  Duration{100 * time.Millisecond},
		},
		Search: SearchConfig{
			URLTemplate: "/?s=%s",
		},
		Watch: WatchConfig{
			Debounce: Duration{200 * time.Millisecond},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is non-empty and the file exists) and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing file keeps the defaults.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r over the defaults. The environment is
// not consulted.
func LoadFromReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := decode("<reader>", data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	err := toml.Unmarshal(data, cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}

// Validate checks every setting's domain.
func (c Config) Validate() error {
	if c.Scroll.Threshold < 0 {
		return &ValueError{Setting: "scroll.threshold", Value: fmt.Sprint(c.Scroll.Threshold), Reason: "must not be negative"}
	}
	if c.Scroll.Throttle.Duration < 0 {
		return &ValueError{Setting: "scroll.throttle", Value: c.Scroll.Throttle.String(), Reason: "must not be negative"}
	}
	if c.Watch.Debounce.Duration < 0 {
		return &ValueError{Setting: "watch.debounce", Value: c.Watch.Debounce.String(), Reason: "must not be negative"}
	}
	if n := strings.Count(c.Search.URLTemplate, "%s"); n != 1 || strings.Count(c.Search.URLTemplate, "%") != 1 {
		return &ValueError{Setting: "search.url_template", Value: c.Search.URLTemplate, Reason: "must contain exactly one %s verb"}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ValueError{Setting: "logging.format", Value: c.Logging.Format, Reason: "must be console or json"}
	}
	return nil
}
