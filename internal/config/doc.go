// Package config loads, normalizes, and validates VideosProcessor
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the pipeline needs: the work/staging area, the three destination roots,
// the title-file handshake path, encoder profile settings, and polling
// cadences.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
