// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/lzcship/lzcship/internal/issue"

	"github.com/spf13/viper"
)

// Provider loads configuration. The CLI layer depends on this interface's
// concrete type through an App-level abstraction so tests can substitute
// fixed configs.
type Provider struct{}

// NewProvider creates a config Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Load reads the configuration according to opts.
//
// With an explicit path the file must exist and validate. With the default
// path, a missing file yields defaults without error; an existing but broken
// file is an error so user mistakes are not silently ignored.
func (p *Provider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault("tool.binary", defaults.Tool.Binary)
	v.SetDefault("registry.host", defaults.Registry.Host)
	v.SetDefault("project.manifest", defaults.Project.Manifest)
	v.SetDefault("project.buildfile", defaults.Project.Buildfile)
	v.SetDefault("project.icon", defaults.Project.Icon)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := opts.ConfigFilePath; path != "" {
		if !fileExists(path) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'lzcship config show' to see the effective configuration").
				Build()
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse configuration").
				WithResource(path).
				WithSuggestion("Check the YAML syntax").
				Wrap(err).
				Build()
		}
	} else {
		defaultPath, err := DefaultConfigFilePath()
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to resolve config directory: %w", err)
		}
		if fileExists(defaultPath) {
			v.SetConfigFile(defaultPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("parse configuration").
					WithResource(defaultPath).
					WithSuggestion("Check the YAML syntax").
					Wrap(err).
					Build()
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
