// Package confloader loads configuration with koanf and watches the
// configuration file for changes.
//
// Priority (highest to lowest):
//
//  1. Overrides (command line flags)
//  2. Environment variables (METRICSDUMP_SECTION_KEY)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct (defaults)
//
// Reload re-reads every source into a fresh koanf instance, so keys removed
// from the file fall back to their defaults. Watcher reports writes to the
// watched files, debounced, so a caller can Reload on change.
package confloader
