// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads editor settings from a YAML file and command-line
// flags.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// CodeConfigInvalid marks settings that cannot be loaded or are out of range.
const CodeConfigInvalid = "CONFIG_INVALID"

// Setting keys. Flags use the same names with "-" in place of "_".
const (
	KeyLogFormat = "log_format"
	KeyLogLevel  = "log_level"
	KeyStyle     = "style"
	KeyColor     = "color"
)

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	styles     = []string{"plain", "table"}
)

// Config holds editor settings.
type Config struct {
	LogFormat string `koanf:"log_format"`
	LogLevel  string `koanf:"log_level"`
	Style     string `koanf:"style"`
	Color     bool   `koanf:"color"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		LogFormat: "text",
		LogLevel:  "warn",
		Style:     "plain",
		Color:     false,
	}
}

// Validate checks that every setting has an accepted value.
func (c Config) Validate() error {
	if !slices.Contains(logFormats, c.LogFormat) {
		return invalid(KeyLogFormat, c.LogFormat, logFormats)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return invalid(KeyLogLevel, c.LogLevel, logLevels)
	}
	if !slices.Contains(styles, c.Style) {
		return invalid(KeyStyle, c.Style, styles)
	}
	return nil
}

func invalid(key, got string, allowed []string) error {
	return oops.Code(CodeConfigInvalid).
		With("key", key).
		With("value", got).
		Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), got)
}

// LoadOptions selects the sources for Load.
type LoadOptions struct {
	// Path is the settings file. An empty path skips the file.
	Path string
	// Required makes a missing file an error; otherwise it is skipped.
	Required bool
	// Flags are layered over the file. Unchanged flags only fill keys the
	// file leaves unset.
	Flags *pflag.FlagSet
}

// Load reads settings from defaults, the settings file and flags, in that
// order, and validates the result.
func Load(opts LoadOptions) (Config, error) {
	k := koanf.New(".")

	if opts.Path != "" {
		_, err := os.Stat(opts.Path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(opts.Path), yaml.Parser()); err != nil {
				return Config{}, oops.Code(CodeConfigInvalid).
					With("path", opts.Path).
					Wrapf(err, "load settings file")
			}
		case errors.Is(err, fs.ErrNotExist) && !opts.Required:
		default:
			return Config{}, oops.Code(CodeConfigInvalid).
				With("path", opts.Path).
				Wrapf(err, "settings file")
		}
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isKey(key) {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code(CodeConfigInvalid).Wrapf(err, "load flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code(CodeConfigInvalid).Wrapf(err, "decode settings")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isKey(key string) bool {
	switch key {
	case KeyLogFormat, KeyLogLevel, KeyStyle, KeyColor:
		return true
	default:
		return false
	}
}

// BindFlags registers the setting flags with their defaults.
func BindFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("log-format", d.LogFormat, "log format (text or json)")
	flags.String("log-level", d.LogLevel, "log level (debug, info, warn or error)")
	flags.String("style", d.Style, "menu style (plain or table)")
	flags.Bool("color", d.Color, "colorize menu output")
}
