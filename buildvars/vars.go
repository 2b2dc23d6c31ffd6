// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Set at link time, e.g.
// `-ldflags "-X github.com/toeirei/passreader/buildvars.Version=v1.0.0"`.
// They stay at their defaults for local or development builds.
var (
	Version = "dev"
	Commit  = "dev"
	Date    = ""
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}
