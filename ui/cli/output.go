// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/toeirei/passreader/internal/vault"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case "":
		return formatText, nil
	case formatText, formatJSON, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// writeEntries prints every entry. Text output is one "title: password" line
// per entry.
func writeEntries(w io.Writer, entries []vault.Entry, f outputFormat) error {
	switch f {
	case formatJSON:
		return writeJSON(w, entries)
	case formatYAML:
		return writeYAML(w, entries)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Title, e.Password); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry prints a single entry. Text output is the bare password.
func writeEntry(w io.Writer, e vault.Entry, f outputFormat) error {
	switch f {
	case formatJSON:
		return writeJSON(w, e)
	case formatYAML:
		return writeYAML(w, e)
	}
	_, err := fmt.Fprintln(w, e.Password)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
