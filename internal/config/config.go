// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads passreader settings. Values are resolved with the
// usual viper precedence: flags, then PASSREADER_* environment variables,
// then an optional passreader.yaml, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable. Dashes in setting names
// become underscores, so database-path is read from PASSREADER_DATABASE_PATH.
const EnvPrefix = "PASSREADER"

// Settings holds everything that may come from a flag, the environment or
// the config file. Mode flags are not settings and are read from the command.
type Settings struct {
	DatabasePath     string `mapstructure:"database-path"`
	DatabasePassword string `mapstructure:"database-password"`
	DatabaseKeyFile  string `mapstructure:"database-key-file"`
	LogConfig        string `mapstructure:"log-config"`
	LogLevel         string `mapstructure:"log-level"`
	Language         string `mapstructure:"language"`
	Format           string `mapstructure:"format"`
}

// Defaults returns the fallback value of every setting.
func Defaults() map[string]any {
	return map[string]any{
		"database-path":     "",
		"database-password": "",
		"database-key-file": "",
		"log-config":        "",
		"log-level":         "info",
		"language":          "en",
		"format":            "text",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Passreader")
		default: // Linux, macOS, etc.
			configDir = "/etc/passreader"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "passreader")
	}

	return filepath.Join(configDir, "passreader.yaml"), nil
}

// LoadConfig resolves settings of type T for cmd. configFile, when not nil,
// names a config file that must exist; otherwise passreader.yaml is searched
// in the user config dir, the system config dir and the working directory,
// and a missing file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("passreader")
	v.SetConfigType("yaml")
	if configFile != nil {
		v.SetConfigFile(*configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
