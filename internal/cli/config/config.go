// Package config provides configuration management for the latidx CLI.
// Values are layered with the precedence flags > environment variables >
// config file > defaults.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all CLI configuration options.
type Config struct {
	// Root is the project root directory to index.
	Root string `koanf:"root"`
	// Entries are the entry files; empty means every .tex under the root.
	Entries []string `koanf:"entries"`
	// OutputFormat is one of auto, text, json, yaml.
	OutputFormat string `koanf:"output"`
	// Verbose raises the log level to debug.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultRoot   = "."
	DefaultOutput = "auto"
)

// envPrefix is the prefix for configuration environment variables,
// e.g. LATIDX_ROOT, LATIDX_OUTPUT.
const envPrefix = "LATIDX_"

// configFileUsed tracks the config file loaded by the last Load call.
var configFileUsed string

// findConfigFile returns the config file to use: the explicit path if given,
// otherwise the first of latidx.yaml, latidx.yml that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"latidx.yaml", "latidx.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load assembles the configuration from defaults, an optional config file,
// LATIDX_* environment variables and explicitly-set flags, in rising
// precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"root":    DefaultRoot,
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// The CLI uses --entry; the config key is the plural.
			key := f.Name
			if key == "entry" {
				key = "entries"
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
	return &cfg, nil
}

// GetConfigFileUsed returns the path of the config file in use, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	switch c.OutputFormat {
	case "auto", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected auto, text, json or yaml)", c.OutputFormat)
	}
}

// configKey is used to store the loaded config in a context.
type configKey struct{}

// WithConfig stores the config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the command context, falling back to
// defaults so commands constructed outside the root command still work.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return &Config{Root: DefaultRoot, OutputFormat: DefaultOutput}
}

// loggerKey is used to store the logger in a context.
type loggerKey struct{}

// NewLogger builds the CLI's structured logger, writing to stderr so that
// command output on stdout stays clean for piping.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context, falling back to a
// discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
