// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/passreader/internal/config"
	"github.com/toeirei/passreader/internal/i18n"
	"github.com/toeirei/passreader/internal/security"
	"golang.org/x/term"
)

// Test seams for terminal access.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// resolvePassword returns the configured password. Without one it asks on the
// terminal; when stdin is not a terminal a key file alone is accepted.
func resolvePassword(cmd *cobra.Command, s config.Settings) (security.Secret, error) {
	if s.DatabasePassword != "" {
		return security.FromString(s.DatabasePassword), nil
	}
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		if s.DatabaseKeyFile != "" {
			return nil, nil
		}
		return nil, fail(nil, "config.missing_password")
	}

	w := cmd.ErrOrStderr()
	if _, err := fmt.Fprint(w, i18n.T("prompt.password")); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, fail(err, "prompt.error", err)
	}
	return security.FromBytes(pw), nil
}
