// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package config loads CLI configuration from a YAML file and command-line
// flags.
package config

import (
	"errors"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/bytecraft/superticket/internal/xdg"
)

// Config holds the settings shared by every command.
type Config struct {
	APIURL          string        `koanf:"api_url" validate:"required,url"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	LogFormat       string        `koanf:"log_format" validate:"oneof=json text"`
	LogLevel        string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	SessionFile     string        `koanf:"session_file"`
	MetricsTextfile string        `koanf:"metrics_textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:    "http://localhost:8080",
		Timeout:   15 * time.Second,
		LogFormat: "json",
		LogLevel:  "warn",
	}
}

// flagKeys maps flag names to configuration keys. Other flags are ignored.
var flagKeys = map[string]string{
	"api-url":          "api_url",
	"timeout":          "timeout",
	"log-format":       "log_format",
	"log-level":        "log_level",
	"session-file":     "session_file",
	"metrics-textfile": "metrics_textfile",
}

// RegisterFlags adds the configuration flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("api-url", d.APIURL, "backend base URL")
	fs.Duration("timeout", d.Timeout, "per-request timeout")
	fs.String("log-format", d.LogFormat, "log format (json or text)")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("session-file", "", "session file (default $XDG_STATE_HOME/superticket/session.json)")
	fs.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")
}

// Load reads configuration from path and flags. Values come from, in
// increasing priority: built-in defaults, the YAML file, flags set on the
// command line. An empty path means the default config file, which may be
// absent. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	filePath, required := path, path != ""
	if filePath == "" {
		p, err := xdg.ConfigFile()
		if err == nil {
			filePath = p
		}
	}
	if filePath != "" {
		if err := loadFile(k, filePath, required); err != nil {
			return Config{}, err
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if cfg.SessionFile == "" {
		p, err := xdg.SessionFile()
		if err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").With("key", "session_file").Wrap(err)
		}
		cfg.SessionFile = p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return oops.Code("CONFIG_NOT_FOUND").With("path", path).Wrap(err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return oops.Code("CONFIG_INVALID").
		With("fields", fields).
		Errorf("invalid configuration: %s", strings.Join(fields, ", "))
}
