// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides translated user-facing messages for passreader.
// It uses the go-i18n library to load the embedded YAML locale files and
// falls back to English for unknown languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads all embedded locales and selects lang.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		_, _ = bundle.ParseMessageFileBytes(data, f.Name())
	}

	current = lang
	localizer = i18n.NewLocalizer(bundle, lang)
}

// T translates messageID. When args are given the translation is used as a
// fmt format string. Unknown IDs are returned unchanged.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// GetLang returns the language passed to the last Init.
func GetLang() string {
	return current
}

// AvailableLocales returns the language tags of all embedded locale files.
func AvailableLocales() []string {
	files, _ := fs.ReadDir(localeFS, "locales")
	var out []string
	for _, f := range files {
		// active.<tag>.yaml
		parts := strings.Split(f.Name(), ".")
		if len(parts) == 3 {
			out = append(out, parts[1])
		}
	}
	return out
}
