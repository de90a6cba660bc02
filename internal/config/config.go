// Package config collects the settings shared by the programs in this module.
// Values come from GOSDL_* environment variables and can be overridden with
// command line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLibrary    = "GOSDL_LIBRARY"
	EnvTTFLibrary = "GOSDL_TTF_LIBRARY"
	EnvDebug      = "GOSDL_DEBUG"
	EnvLogLevel   = "GOSDL_LOG_LEVEL"
	EnvLogFormat  = "GOSDL_LOG_FORMAT"
	EnvHints      = "GOSDL_HINTS"
)

type Config struct {
	// LibraryPath overrides the SDL2 shared library; empty uses the platform default.
	LibraryPath string
	// TTFLibraryPath overrides the SDL2_ttf shared library.
	TTFLibraryPath string
	// Debug enables parent-liveness assertions on child resources.
	Debug bool
	// LogLevel is a zap level name.
	LogLevel string
	// LogFormat is "console" or "json".
	LogFormat string
	// Hints are applied with SDL_SetHint after initialisation.
	Hints map[string]string
}

func Default() Config {
	return Config{
		Debug:     true,
		LogLevel:  "info",
		LogFormat: "console",
		Hints:     map[string]string{},
	}
}

// FromEnv returns Default overlaid with the GOSDL_* environment.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if v, ok := lookup(EnvLibrary); ok {
		c.LibraryPath = v
	}
	if v, ok := lookup(EnvTTFLibrary); ok {
		c.TTFLibraryPath = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}
	if v, ok := lookup(EnvHints); ok && v != "" {
		for _, kv := range strings.Split(v, ",") {
			if err := c.addHint(kv); err != nil {
				return c, fmt.Errorf("%s: %w", EnvHints, err)
			}
		}
	}
	return c, c.Validate()
}

func (c *Config) addHint(kv string) error {
	name, value, ok := strings.Cut(strings.TrimSpace(kv), "=")
	if !ok || name == "" {
		return fmt.Errorf("hint %q is not NAME=VALUE", kv)
	}
	if c.Hints == nil {
		c.Hints = map[string]string{}
	}
	c.Hints[name] = value
	return nil
}

// Validate checks the log settings.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: want console or json", c.LogFormat)
	}
	return nil
}

type hintFlag struct{ c *Config }

func (h hintFlag) String() string {
	if h.c == nil {
		return ""
	}
	var parts []string
	for k, v := range h.c.Hints {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (h hintFlag) Set(v string) error { return h.c.addHint(v) }

// RegisterFlags binds c's fields to fs using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LibraryPath, "sdl-lib", c.LibraryPath, "path to the SDL2 shared library")
	fs.StringVar(&c.TTFLibraryPath, "ttf-lib", c.TTFLibraryPath, "path to the SDL2_ttf shared library")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "assert that child resources are not used after their parent")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console or json)")
	fs.Var(hintFlag{c}, "hint", "SDL hint as NAME=VALUE (repeatable)")
}

// NewLogger builds a zap logger for the configured level and format.
func (c Config) NewLogger() (*zap.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(c.LogLevel)

	var zc zap.Config
	if c.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
