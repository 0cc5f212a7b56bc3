// SPDX-License-Identifier: MPL-2.0

// Package config loads the lzcship configuration file.
//
// Configuration is a YAML file in the platform config directory
// (~/.config/lzcship/config.yaml on Linux). Values are loaded with viper and
// the decoded result is checked against an embedded CUE schema, so a config
// that decodes but carries nonsense values (empty tool binary, blank registry
// host) is rejected with a path-qualified error.
package config
