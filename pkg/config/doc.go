// Package config loads the cssuseref configuration.
//
// Values are layered with koanf: embedded defaults, then the project
// config file (.cssuseref.toml, cssuseref.toml, .cssuseref.yaml or
// cssuseref.yaml), then CSSUSEREF_* environment variables and finally
// command-line overrides.
package config
