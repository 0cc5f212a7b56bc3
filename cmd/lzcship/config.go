// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/lzcship/lzcship/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the `lzcship config` command group.
func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the lzcship configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after merging defaults, the config
file, and LZCSHIP_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, app)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cfgFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigFilePath(); err != nil {
					return app.fail(cmd, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return configCmd
}

func runConfigShow(cmd *cobra.Command, app *App) error {
	out, err := yaml.Marshal(app.Config)
	if err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
