// Package config loads, validates, and normalizes SlateLink configuration
// from TOML files.
package config
