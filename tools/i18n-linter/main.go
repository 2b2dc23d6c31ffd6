// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every translation key used in the source exists in
// the primary locale and that all other locales carry the same keys.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
	projectRoot   = "."
)

// keyUse matches i18n.T("key") and fail(err, "key") calls.
var keyUse = regexp.MustCompile(`(?:i18n\.T|fail)\((?:[^,()"]*,\s*)?"([a-z_]+\.[a-z_.]+)"`)

func main() {
	ok, err := lint(projectRoot, localesDir, os.Stdout)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// lint reports problems to w. It returns false when a key is missing
// somewhere; orphaned keys only produce a warning.
func lint(root, locales string, w io.Writer) (bool, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return false, fmt.Errorf("finding used keys: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return false, fmt.Errorf("loading primary locale %s: %w", primaryLocale, err)
	}
	fmt.Fprintf(w, "Found %d keys in source, %d in %s.\n", len(used), len(primary), primaryLocale)

	ok := true
	if missing := difference(used, primary); len(missing) > 0 {
		ok = false
		fmt.Fprintf(w, "Used but not translated in %s:\n", primaryLocale)
		for _, k := range missing {
			fmt.Fprintf(w, "  - Missing: %s\n", k)
		}
	}
	for _, k := range difference(primary, used) {
		fmt.Fprintf(w, "  - Orphaned: %s\n", k)
	}

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return false, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return false, fmt.Errorf("loading %s: %w", file, err)
		}
		for _, k := range difference(primary, keys) {
			ok = false
			fmt.Fprintf(w, "  - Missing in %s: %s\n", filepath.Base(file), k)
		}
	}

	if ok {
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
	return ok, nil
}

// findUsedKeys scans non-test .go files below root for translation keys.
// Hidden and underscore directories as well as tools/ are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyUse.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
