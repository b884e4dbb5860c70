// Package config loads linecount settings from defaults, environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/dshills/linecount/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. LINECOUNT_ROOTS=a,b
const EnvPrefix = "LINECOUNT_"

// Defaults used when nothing else is configured
var (
	DefaultRoots      = []string{"../client/", "../server/"}
	DefaultExtensions = []string{"ts", "tsx", "js", "jsx", "html", "css"}
	DefaultExclusions = []string{"node_modules"}
)

const (
	DefaultWorkers   = 1
	DefaultLogFormat = logging.FormatConsole
)

// Flag names shared with the CLI
const (
	FlagRoot      = "root"
	FlagExt       = "ext"
	FlagExclude   = "exclude"
	FlagWorkers   = "workers"
	FlagVerbose   = "verbose"
	FlagLogFormat = "log-format"
)

// flagKeys maps flag names onto config keys
var flagKeys = map[string]string{
	FlagRoot:      "roots",
	FlagExt:       "extensions",
	FlagExclude:   "exclusions",
	FlagWorkers:   "workers",
	FlagVerbose:   "verbose",
	FlagLogFormat: "log_format",
}

// listKeys are split on commas when read from the environment
var listKeys = map[string]bool{
	"roots":      true,
	"extensions": true,
	"exclusions": true,
}

var ErrInvalidWorkers = errors.New("workers must be at least 1")

// Config holds the settings for one run
type Config struct {
	Roots      []string `koanf:"roots"`
	Extensions []string `koanf:"extensions"`
	Exclusions []string `koanf:"exclusions"`
	Workers    int      `koanf:"workers"`
	Verbose    bool     `koanf:"verbose"`
	LogFormat  string   `koanf:"log_format"`
}

// Load builds a Config. Precedence (highest to lowest): flags > env vars > defaults.
// Only flags the user actually set override lower layers. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"roots":      DefaultRoots,
		"extensions": DefaultExtensions,
		"exclusions": DefaultExclusions,
		"workers":    DefaultWorkers,
		"verbose":    false,
		"log_format": DefaultLogFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Environment variables
	// Transform: LINECOUNT_LOG_FORMAT -> log_format, LINECOUNT_ROOTS=a,b -> [a b]
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 3. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be repaired silently
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWorkers, c.Workers)
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", c.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}
	return nil
}

// splitList splits a comma separated value, dropping blank items
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
