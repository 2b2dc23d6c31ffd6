// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package vault exposes a read-only view over an encrypted password database.
// Decryption is delegated to gokeepasslib; this package only collects the
// decrypted entries and answers lookups against them.
package vault

import (
	"errors"
	"strings"
)

var (
	// ErrOpen is returned (wrapped) for every failure to read or decrypt a
	// database: missing file, bad key file, wrong password or corrupt data.
	ErrOpen = errors.New("could not open database")
	// ErrEntryNotFound is returned by Get when no entry carries the title.
	ErrEntryNotFound = errors.New("entry not found")
)

// Entry is a single decrypted credential record.
type Entry struct {
	UUID     string            `json:"uuid" yaml:"uuid"`
	Group    string            `json:"group" yaml:"group"`
	Title    string            `json:"title" yaml:"title"`
	Username string            `json:"username,omitempty" yaml:"username,omitempty"`
	Password string            `json:"password" yaml:"password"`
	URL      string            `json:"url,omitempty" yaml:"url,omitempty"`
	Notes    string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Database is an opened, fully decrypted database. It is immutable.
type Database struct {
	path    string
	entries []Entry
}

// New returns a Database over entries that were already decrypted.
func New(path string, entries []Entry) *Database {
	return &Database{path: path, entries: entries}
}

// Path returns the file the database was read from.
func (d *Database) Path() string { return d.path }

// Len returns the number of entries.
func (d *Database) Len() int { return len(d.entries) }

// Entries returns a copy of all entries in traversal order.
func (d *Database) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Titles returns the title of every entry in traversal order.
func (d *Database) Titles() []string {
	titles := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		titles = append(titles, e.Title)
	}
	return titles
}

// Get returns the first entry whose title equals title. If there is no exact
// match the first case-insensitive match is returned.
func (d *Database) Get(title string) (Entry, error) {
	for _, e := range d.entries {
		if e.Title == title {
			return e, nil
		}
	}
	for _, e := range d.entries {
		if strings.EqualFold(e.Title, title) {
			return e, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}

// Search returns the entries whose title contains fragment, ignoring case.
// An empty fragment matches every entry.
func (d *Database) Search(fragment string) []Entry {
	needle := strings.ToLower(fragment)
	var out []Entry
	for _, e := range d.entries {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			out = append(out, e)
		}
	}
	return out
}
