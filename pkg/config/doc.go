// Package config manages warden server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file
// (warden.yml under WARDEN_CONFIG_PATH), then WARDEN_* environment
// variables. Each attribute remembers which layer supplied it so
// "wardenctl configuration show" can report provenance.
package config
