package config

import (
	"path/filepath"
	"strings"
)

// Normalize returns a copy of the config with whitespace trimmed, level and
// format lower-cased and the dump path cleaned.
//
// Values from environment variables and flags arrive in whatever case the
// user typed; Verify expects the canonical form.
func Normalize(cfg *Config) *Config {
	n := *cfg

	n.Dump.Path = strings.TrimSpace(n.Dump.Path)
	if n.Dump.Path != "" {
		n.Dump.Path = filepath.Clean(n.Dump.Path)
	}
	n.Dump.Location = strings.TrimSpace(n.Dump.Location)

	n.Log.Level = strings.ToLower(strings.TrimSpace(n.Log.Level))
	n.Log.Format = strings.ToLower(strings.TrimSpace(n.Log.Format))

	return &n
}
