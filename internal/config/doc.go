// Package config loads, normalizes, and validates gifclip
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the TOML file at ~/.config/gifclip/config.toml.
// Always obtain settings through this package so downstream code
// receives sanitized paths and validated knobs.
package config
