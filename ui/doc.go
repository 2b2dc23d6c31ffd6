// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui groups the user interfaces of Passreader: the Cobra command in
// ui/cli and the interactive search prompt in ui/tui/prompt.
package ui
