// Package config loads, normalizes, and validates presskit's TOML
// configuration. Load applies repository defaults, decodes the config file
// when present, expands ~ paths, and rejects unusable values before any
// component starts.
package config
