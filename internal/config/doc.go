// Package config loads shelf-api settings from defaults, an optional
// config.yaml and SHELF_* environment variables, and validates them before
// any component is built.
package config
