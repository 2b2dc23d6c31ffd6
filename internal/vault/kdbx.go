// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

package vault

import (
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tobischo/gokeepasslib/v3"
)

// standard KeePass value keys; everything else is a custom field.
var standardKeys = map[string]struct{}{
	"Title":    {},
	"UserName": {},
	"Password": {},
	"URL":      {},
	"Notes":    {},
}

// Open reads and decrypts the KDBX database at path. keyFile is optional.
// When password is empty and a key file is given, the key file alone is used.
// Every failure wraps ErrOpen.
func Open(path, password, keyFile string) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer file.Close()

	creds, err := credentials(password, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: key file %s: %w", ErrOpen, keyFile, err)
	}

	db := gokeepasslib.NewDatabase()
	db.Credentials = creds
	if err := gokeepasslib.NewDecoder(file).Decode(db); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if db.Content == nil || db.Content.Root == nil {
		return nil, fmt.Errorf("%w: wrong password or key file", ErrOpen)
	}
	if err := db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("%w: unlock protected values: %w", ErrOpen, err)
	}

	entries := collect(db)
	log.Debug("database opened", "path", path, "entries", len(entries))
	return New(path, entries), nil
}

func credentials(password, keyFile string) (*gokeepasslib.DBCredentials, error) {
	switch {
	case keyFile == "":
		return gokeepasslib.NewPasswordCredentials(password), nil
	case password == "":
		return gokeepasslib.NewKeyCredentials(keyFile)
	default:
		return gokeepasslib.NewPasswordAndKeyCredentials(password, keyFile)
	}
}

// collect walks the group tree depth first. Entries of a group come before
// its subgroups; the recycle bin is skipped.
func collect(db *gokeepasslib.Database) []Entry {
	var skip *gokeepasslib.UUID
	if meta := db.Content.Meta; meta != nil && meta.RecycleBinEnabled.Bool {
		bin := meta.RecycleBinUUID
		skip = &bin
	}

	var out []Entry
	var walk func(g gokeepasslib.Group, parents []string)
	walk = func(g gokeepasslib.Group, parents []string) {
		if skip != nil && g.UUID.Compare(*skip) {
			return
		}
		path := append(append([]string(nil), parents...), g.Name)
		for _, e := range g.Entries {
			out = append(out, convert(e, strings.Join(path, "/")))
		}
		for _, sub := range g.Groups {
			walk(sub, path)
		}
	}
	for _, g := range db.Content.Root.Groups {
		walk(g, nil)
	}
	return out
}

func convert(e gokeepasslib.Entry, group string) Entry {
	out := Entry{
		UUID:     uuid.UUID(e.UUID).String(),
		Group:    group,
		Title:    e.GetTitle(),
		Username: e.GetContent("UserName"),
		Password: e.GetPassword(),
		URL:      e.GetContent("URL"),
		Notes:    e.GetContent("Notes"),
	}
	for _, v := range e.Values {
		if _, ok := standardKeys[v.Key]; ok {
			continue
		}
		if out.Fields == nil {
			out.Fields = make(map[string]string)
		}
		out.Fields[v.Key] = v.Value.Content
	}
	return out
}
