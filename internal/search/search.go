// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package search turns typed prompt text into candidate entry titles.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/toeirei/passreader/internal/vault"
)

// Completer returns the titles offered for the text typed so far.
type Completer interface {
	Complete(text string) []string
}

// Searcher is the part of a database a Substring completer needs.
type Searcher interface {
	Search(fragment string) []vault.Entry
}

// Substring offers the titles of all entries containing the typed text,
// ignoring case.
type Substring struct {
	db Searcher
}

// NewSubstring returns a Substring completer over db.
func NewSubstring(db Searcher) *Substring {
	return &Substring{db: db}
}

// Complete implements Completer. Duplicate titles are reported once.
func (s *Substring) Complete(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.db.Search(text) {
		if _, ok := seen[e.Title]; ok {
			continue
		}
		seen[e.Title] = struct{}{}
		out = append(out, e.Title)
	}
	return out
}

// Fuzzy filters the completions of another completer by fuzzy matching the
// last word of the typed text. Everything before the last word is handed to
// the wrapped completer unchanged.
type Fuzzy struct {
	inner Completer
}

// NewFuzzy wraps inner.
func NewFuzzy(inner Completer) *Fuzzy {
	return &Fuzzy{inner: inner}
}

// Complete implements Completer. Results are ordered best match first.
func (f *Fuzzy) Complete(text string) []string {
	head, word := splitLastWord(text)
	candidates := f.inner.Complete(head)
	if word == "" {
		return candidates
	}
	matches := fuzzy.Find(word, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

func splitLastWord(text string) (head, word string) {
	i := strings.LastIndexAny(text, " \t")
	if i < 0 {
		return "", text
	}
	return text[:i+1], text[i+1:]
}
