// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Passreader using Cobra.
// It resolves settings from flags, environment and config file, sets up
// logging, opens the database through the vault package and runs exactly one
// retrieval mode. Lookup and matching live in vault and search; CLI code stays
// thin.
package cli
