// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the log configuration is not valid JSON.
var ErrInvalidConfig = errors.New("log config is not valid json")

// Config is the content of a JSON log configuration file.
type Config struct {
	Level           string `mapstructure:"level"`
	Formatter       string `mapstructure:"formatter"`
	Output          string `mapstructure:"output"`
	Prefix          string `mapstructure:"prefix"`
	ReportTimestamp bool   `mapstructure:"report_timestamp"`
	ReportCaller    bool   `mapstructure:"report_caller"`
	TimeFormat      string `mapstructure:"time_format"`
}

// LoadConfig reads the JSON log configuration at path.
func LoadConfig(path string) (Config, error) {
	var c Config
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return c, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return c, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger and installs it as the charmbracelet/log
// default. Without configPath the logger writes colored text to stderr at
// level. A level set in the configuration file wins over level. The returned
// closer releases a log file opened for the "output" setting.
func Setup(level, configPath string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := clog.Options{Level: lvl}
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if configPath != "" {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if cfg.Level != "" {
			if opts.Level, err = ParseLevel(cfg.Level); err != nil {
				return nil, err
			}
		}
		if opts.Formatter, err = parseFormatter(cfg.Formatter); err != nil {
			return nil, err
		}
		opts.Prefix = cfg.Prefix
		opts.ReportTimestamp = cfg.ReportTimestamp
		opts.ReportCaller = cfg.ReportCaller
		opts.TimeFormat = cfg.TimeFormat

		switch cfg.Output {
		case "", "stderr":
		case "stdout":
			out = os.Stdout
		default:
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, fmt.Errorf("open log output: %w", err)
			}
			out, closer = f, f
		}
	}

	clog.SetDefault(clog.NewWithOptions(out, opts))
	return closer, nil
}

func parseFormatter(name string) (clog.Formatter, error) {
	switch name {
	case "", "text":
		return clog.TextFormatter, nil
	case "json":
		return clog.JSONFormatter, nil
	case "logfmt":
		return clog.LogfmtFormatter, nil
	}
	return clog.TextFormatter, fmt.Errorf("unknown log formatter %q", name)
}
