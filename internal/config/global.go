// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir, for tests that must not touch the
// real user config directory.
var configDirOverride string

// SetConfigDirOverride overrides the config directory (tests only).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
