// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging configures the process wide charmbracelet/log logger from
// a level name and an optional JSON log configuration file.
package logging

import (
	"errors"
	"fmt"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Levels lists the accepted level names in increasing severity.
var Levels = []string{"debug", "info", "warning", "error", "critical"}

// ErrUnknownLevel is returned for level names outside Levels.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel maps a level name to a charmbracelet/log level. "warn" and
// "fatal" are accepted as aliases.
func ParseLevel(name string) (clog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return clog.DebugLevel, nil
	case "", "info":
		return clog.InfoLevel, nil
	case "warning", "warn":
		return clog.WarnLevel, nil
	case "error":
		return clog.ErrorLevel, nil
	case "critical", "fatal":
		return clog.FatalLevel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}
