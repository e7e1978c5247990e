// Package config loads, normalizes, and validates songfetch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SONGFETCH_TITLES_FILE. The Config type is the single explicit settings value
// handed to the pipeline; nothing reads process-wide state after Load returns.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical extensions, and clear validation errors.
package config
