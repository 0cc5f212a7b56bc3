// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the root lzcship configuration.
	Config struct {
		Tool     ToolConfig     `mapstructure:"tool" yaml:"tool" json:"tool"`
		Registry RegistryConfig `mapstructure:"registry" yaml:"registry" json:"registry"`
		Project  ProjectConfig  `mapstructure:"project" yaml:"project" json:"project"`
		Hooks    HooksConfig    `mapstructure:"hooks" yaml:"hooks" json:"hooks"`
		UI       UIConfig       `mapstructure:"ui" yaml:"ui" json:"ui"`
	}

	// ToolConfig configures the external packaging CLI.
	ToolConfig struct {
		// Binary is the packaging CLI name or absolute path.
		Binary string `mapstructure:"binary" yaml:"binary" json:"binary"`
	}

	// RegistryConfig configures the vendor image registry.
	RegistryConfig struct {
		// Host is the registry host copied images live under. Image
		// references already below this host are never copied or rewritten.
		Host string `mapstructure:"host" yaml:"host" json:"host"`
	}

	// ProjectConfig names the project files checked before any stage runs.
	ProjectConfig struct {
		Manifest  string `mapstructure:"manifest" yaml:"manifest" json:"manifest"`
		Buildfile string `mapstructure:"buildfile" yaml:"buildfile" json:"buildfile"`
		Icon      string `mapstructure:"icon" yaml:"icon" json:"icon"`
	}

	// HooksConfig holds optional shell snippets run around pipeline stages.
	// Snippets run in an embedded POSIX shell interpreter, not the system
	// shell, so they behave the same on every platform.
	HooksConfig struct {
		PreBuild    string `mapstructure:"pre_build" yaml:"pre_build" json:"pre_build"`
		PostBuild   string `mapstructure:"post_build" yaml:"post_build" json:"post_build"`
		PrePublish  string `mapstructure:"pre_publish" yaml:"pre_publish" json:"pre_publish"`
		PostPublish string `mapstructure:"post_publish" yaml:"post_publish" json:"post_publish"`
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	}

	// LoadOptions controls a single Load call.
	LoadOptions struct {
		// ConfigFilePath is an explicit config file path (--config). When
		// set, that file must exist and load; there is no fallback.
		ConfigFilePath string
	}
)

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Tool:     ToolConfig{Binary: "lzc-cli"},
		Registry: RegistryConfig{Host: "registry.lazycat.cloud"},
		Project: ProjectConfig{
			Manifest:  "lzc-manifest.yml",
			Buildfile: "lzc-build.yml",
			Icon:      "icon.png",
		},
		UI: UIConfig{},
	}
}
