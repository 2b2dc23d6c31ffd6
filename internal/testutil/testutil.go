// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds helpers shared by package tests. Nothing here is
// used by the shipped binary.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tobischo/gokeepasslib/v3"
	w "github.com/tobischo/gokeepasslib/v3/wrappers"
)

// Fixture describes an entry written into a test database.
type Fixture struct {
	Group    string
	Title    string
	Username string
	Password string
	URL      string
	Extra    map[string]string
}

// DefaultFixtures is a small, varied set of entries used across tests.
var DefaultFixtures = []Fixture{
	{Group: "Internet", Title: "GitHub", Username: "octo", Password: "gh-secret", URL: "https://github.com"},
	{Group: "Internet", Title: "Gmail", Username: "me@example.com", Password: "mail-secret"},
	{Group: "Banking", Title: "Bank of Nowhere", Password: "b4nk", Extra: map[string]string{"PIN": "1234"}},
	{Title: "Wifi", Password: "hunter2"},
}

// Options controls how WriteKDBXWith protects and lays out a database.
type Options struct {
	Password string
	// KeyFile is added to the composite key. With an empty Password the key
	// file alone protects the database.
	KeyFile string
	// RecycleBin names a fixture group that is marked as the recycle bin.
	RecycleBin string
}

// WriteKDBX writes a KDBX database protected by password (and keyFile when it
// is not empty) into dir and returns its path. Fixtures without a group are
// stored directly in the root group.
func WriteKDBX(t *testing.T, dir, password, keyFile string, fixtures ...Fixture) string {
	t.Helper()
	return WriteKDBXWith(t, dir, Options{Password: password, KeyFile: keyFile}, fixtures...)
}

// WriteKDBXWith is WriteKDBX with full control over credentials and the
// recycle bin.
func WriteKDBXWith(t *testing.T, dir string, opts Options, fixtures ...Fixture) string {
	t.Helper()

	root := gokeepasslib.NewGroup()
	root.Name = "Root"
	subgroups := map[string]int{}
	for _, f := range fixtures {
		entry := gokeepasslib.NewEntry()
		entry.Values = append(entry.Values,
			value("Title", f.Title),
			value("UserName", f.Username),
			protected("Password", f.Password),
		)
		if f.URL != "" {
			entry.Values = append(entry.Values, value("URL", f.URL))
		}
		for k, v := range f.Extra {
			entry.Values = append(entry.Values, protected(k, v))
		}
		if f.Group == "" {
			root.Entries = append(root.Entries, entry)
			continue
		}
		idx, ok := subgroups[f.Group]
		if !ok {
			g := gokeepasslib.NewGroup()
			g.Name = f.Group
			root.Groups = append(root.Groups, g)
			idx = len(root.Groups) - 1
			subgroups[f.Group] = idx
		}
		root.Groups[idx].Entries = append(root.Groups[idx].Entries, entry)
	}

	var creds *gokeepasslib.DBCredentials
	var err error
	switch {
	case opts.KeyFile == "":
		creds = gokeepasslib.NewPasswordCredentials(opts.Password)
	case opts.Password == "":
		creds, err = gokeepasslib.NewKeyCredentials(opts.KeyFile)
	default:
		creds, err = gokeepasslib.NewPasswordAndKeyCredentials(opts.Password, opts.KeyFile)
	}
	if err != nil {
		t.Fatalf("key credentials: %v", err)
	}

	meta := gokeepasslib.NewMetaData()
	meta.RecycleBinEnabled = w.NewBoolWrapper(false)
	if opts.RecycleBin != "" {
		idx, ok := subgroups[opts.RecycleBin]
		if !ok {
			t.Fatalf("recycle bin group %q has no fixtures", opts.RecycleBin)
		}
		meta.RecycleBinEnabled = w.NewBoolWrapper(true)
		meta.RecycleBinUUID = root.Groups[idx].UUID
	}

	db := &gokeepasslib.Database{
		Header:      gokeepasslib.NewHeader(),
		Credentials: creds,
		Content: &gokeepasslib.DBContent{
			Meta: meta,
			Root: &gokeepasslib.RootData{
				Groups: []gokeepasslib.Group{root},
			},
		},
	}
	if err := db.LockProtectedEntries(); err != nil {
		t.Fatalf("lock entries: %v", err)
	}

	path := filepath.Join(dir, "test.kdbx")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create database file: %v", err)
	}
	defer file.Close()
	if err := gokeepasslib.NewEncoder(file).Encode(db); err != nil {
		t.Fatalf("encode database: %v", err)
	}
	return path
}

// WriteKeyFile writes arbitrary key material and returns the file path.
func WriteKeyFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.key")
	if err := os.WriteFile(path, []byte("passreader test key material\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}

func value(key, v string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{Key: key, Value: gokeepasslib.V{Content: v}}
}

func protected(key, v string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{
		Key:   key,
		Value: gokeepasslib.V{Content: v, Protected: w.NewBoolWrapper(true)},
	}
}
