// Package config loads and validates the tubeconv TOML configuration.
//
// Load reads the config file (missing files fall back to defaults), applies
// environment overrides, expands home-relative paths, and validates the
// result. The embedded sample_config.toml documents every knob and is what
// "tubeconv config init" writes.
package config
