// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package main

import (
	"log/slog"
	"net"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/chott/chott/internal/engine"
	"github.com/chott/chott/internal/logging"
	"github.com/chott/chott/internal/xdg"
)

// CodeConfigInvalid is returned for a config that cannot be loaded or used.
const CodeConfigInvalid = "CONFIG_INVALID"

// Default values for config keys.
const (
	defaultListenAddr  = "127.0.0.1:8080"
	defaultMetricsAddr = "127.0.0.1:9100"
	defaultLogFormat   = logging.FormatJSON
	defaultLogLevel    = "info"
)

// Config holds the settings shared by all commands. Values come from the
// flag defaults, then the config file, then flags set on the command line.
type Config struct {
	ListenAddr   string        `koanf:"listen-addr"`
	MetricsAddr  string        `koanf:"metrics-addr"`
	TickInterval time.Duration `koanf:"tick-interval"`
	LockWait     time.Duration `koanf:"lock-wait"`
	LogFormat    string        `koanf:"log-format"`
	LogLevel     string        `koanf:"log-level"`
	WorldFile    string        `koanf:"world-file"`
	RosterFile   string        `koanf:"roster-file"`
	Seed         int64         `koanf:"seed"`
}

// registerFlags adds every config key to fs with its default.
func registerFlags(fs *pflag.FlagSet) {
	fs.String("listen-addr", defaultListenAddr, "read API listen address")
	fs.String("metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.Duration("tick-interval", engine.DefaultInterval, "time between world ticks")
	fs.Duration("lock-wait", engine.DefaultLockWait, "how long a tick waits for a busy population before it is skipped")
	fs.String("log-format", defaultLogFormat, "log format (json or text)")
	fs.String("log-level", defaultLogLevel, "log level (debug, info, warn or error)")
	registerWorldFlags(fs)
	fs.Int64("seed", 0, "random seed (0 = time-based)")
}

func registerWorldFlags(fs *pflag.FlagSet) {
	fs.String("world-file", "", "world YAML file (default: built-in world)")
	fs.String("roster-file", "", "actor roster YAML file (default: built-in roster)")
}

// loadConfig reads the config file at path, or the user's config file when
// path is empty, and overlays the flags in fs that were set explicitly.
func loadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		if p, ok := xdg.DefaultConfigFile(); ok {
			slog.Debug("using config file", "path", p)
			path = p
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code(CodeConfigInvalid).
				With("path", path).
				Wrapf(err, "failed to load config file")
		}
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, oops.Code(CodeConfigInvalid).Wrapf(err, "failed to load flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(CodeConfigInvalid).Wrapf(err, "failed to decode config")
	}
	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (cfg *Config) Validate() error {
	if cfg.ListenAddr == "" {
		return invalid("listen-addr", cfg.ListenAddr, "listen-addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return invalid("listen-addr", cfg.ListenAddr, "listen-addr must be host:port")
	}
	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			return invalid("metrics-addr", cfg.MetricsAddr, "metrics-addr must be host:port")
		}
	}
	if cfg.TickInterval <= 0 {
		return invalid("tick-interval", cfg.TickInterval.String(), "tick-interval must be positive")
	}
	if cfg.LockWait < 0 {
		return invalid("lock-wait", cfg.LockWait.String(), "lock-wait cannot be negative")
	}
	if cfg.LogFormat != logging.FormatJSON && cfg.LogFormat != logging.FormatText {
		return invalid("log-format", cfg.LogFormat, "log-format must be 'json' or 'text'")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return invalid("log-level", cfg.LogLevel, "log-level must be debug, info, warn or error")
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (cfg *Config) Level() slog.Level {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func invalid(key, value, msg string) error {
	return oops.Code(CodeConfigInvalid).
		With("key", key).
		With("value", value).
		Errorf("%s", msg)
}
