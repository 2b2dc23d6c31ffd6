// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Passreader.
//
// Usage:
//
//	go run . [flags]
//	./passreader -d vault.kdbx -g "GitHub"
//
// See --help for options.
package main

import (
	"os"

	"github.com/toeirei/passreader/ui/cli"
)

func main() {
	// Execute has already logged the error.
	os.Exit(cli.ExitCode(cli.Execute()))
}
