// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/passreader/internal/config"
)

// newCmd returns a command carrying the flags LoadConfig binds in production.
func newCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().StringP("database-path", "d", "", "")
	cmd.Flags().StringP("database-password", "p", "", "")
	cmd.Flags().StringP("database-key-file", "k", "", "")
	cmd.Flags().StringP("log-level", "L", "info", "")
	cmd.Flags().String("language", "en", "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

// isolate keeps the user's real config directory out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	got, err := cfg.LoadConfig[cfg.Settings](newCmd(t), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.LogLevel != "info" || got.Language != "en" || got.Format != "text" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.DatabasePath != "" {
		t.Fatalf("expected empty database path, got %q", got.DatabasePath)
	}
}

func TestLoadConfig_EnvironmentSuppliesDatabaseSettings(t *testing.T) {
	isolate(t)
	t.Setenv("PASSREADER_DATABASE_PATH", "/tmp/env.kdbx")
	t.Setenv("PASSREADER_DATABASE_PASSWORD", "env-pw")
	t.Setenv("PASSREADER_DATABASE_KEY_FILE", "/tmp/env.key")

	got, err := cfg.LoadConfig[cfg.Settings](newCmd(t), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.DatabasePath != "/tmp/env.kdbx" || got.DatabasePassword != "env-pw" || got.DatabaseKeyFile != "/tmp/env.key" {
		t.Fatalf("environment not applied: %+v", got)
	}
}

func TestLoadConfig_FlagsWinOverEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PASSREADER_DATABASE_PATH", "/tmp/env.kdbx")
	t.Setenv("PASSREADER_LOG_LEVEL", "debug")

	got, err := cfg.LoadConfig[cfg.Settings](newCmd(t, "-d", "/tmp/flag.kdbx"), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.DatabasePath != "/tmp/flag.kdbx" {
		t.Fatalf("flag should win, got %q", got.DatabasePath)
	}
	if got.LogLevel != "debug" {
		t.Fatalf("environment should beat the flag default, got %q", got.LogLevel)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := "database-path: /srv/file.kdbx\nlanguage: de\nformat: json\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Settings](newCmd(t), cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.DatabasePath != "/srv/file.kdbx" {
		t.Fatalf("expected path from file, got %q", got.DatabasePath)
	}
	if got.Language != "de" || got.Format != "json" {
		t.Fatalf("unexpected settings from file: %+v", got)
	}
}

func TestLoadConfig_SearchesUserConfigDir(t *testing.T) {
	isolate(t)
	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("database-key-file: /home/me/db.key\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Settings](newCmd(t), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.DatabaseKeyFile != "/home/me/db.key" {
		t.Fatalf("expected key file from user config, got %q", got.DatabaseKeyFile)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := cfg.LoadConfig[cfg.Settings](newCmd(t), cfg.Defaults(), &missing); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
