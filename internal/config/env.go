package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix shared by every environment override.
const EnvPrefix = "PAGEKIT_"

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetter applies one environment value to a config.
type envSetter func(cfg *Config, value string) error

// envMapping returns the environment variable -> setting mappings.
func envMapping() map[string]envSetter {
	return map[string]envSetter{
		"PAGEKIT_SCROLL_THRESHOLD": func(cfg *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return envError("PAGEKIT_SCROLL_THRESHOLD", v, err)
			}
			cfg.Scroll.Threshold = n
			return nil
		},
		"PAGEKIT_SCROLL_THROTTLE": func(cfg *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return envError("PAGEKIT_SCROLL_THROTTLE", v, err)
			}
			cfg.Scroll.Throttle = Duration{d}
			return nil
		},
		"PAGEKIT_SEARCH_URL_TEMPLATE": func(cfg *Config, v string) error {
			cfg.Search.URLTemplate = v
			return nil
		},
		"PAGEKIT_LAZY_LOAD_FORCE_FALLBACK": func(cfg *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError("PAGEKIT_LAZY_LOAD_FORCE_FALLBACK", v, err)
			}
			cfg.LazyLoad.ForceFallback = b
			return nil
		},
		"PAGEKIT_WATCH_DEBOUNCE": func(cfg *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return envError("PAGEKIT_WATCH_DEBOUNCE", v, err)
			}
			cfg.Watch.Debounce = Duration{d}
			return nil
		},
		"PAGEKIT_LOG_LEVEL": func(cfg *Config, v string) error {
			cfg.Logging.Level = strings.ToLower(v)
			return nil
		},
		"PAGEKIT_LOG_FORMAT": func(cfg *Config, v string) error {
			cfg.Logging.Format = strings.ToLower(v)
			return nil
		},
	}
}

// EnvVars returns the supported environment variable names, sorted.
func EnvVars() []string {
	mapping := envMapping()
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides cfg with every mapped variable that lookup finds.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, name := range EnvVars() {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envMapping()[name](cfg, v); err != nil {
			return err
		}
	}
	return nil
}

func envError(name, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, name, value, err)
}
