// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBuildCommand creates the `lzcship build` command.
func newBuildCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the package artifact",
		Long: `Build the package artifact from the current project.

Runs the external packaging tool's project build and verifies the
resulting <Name>-<Version>.lpk artifact exists. The pre_build and
post_build hooks from the lzcship config run around the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, app)
		},
	}
}

func runBuild(cmd *cobra.Command, app *App) error {
	p, err := app.loadProject()
	if err != nil {
		return app.fail(cmd, err)
	}

	if err := app.stageBuild(cmd.Context(), p); err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Built %s\n", successIcon, CmdStyle.Render(p.ArtifactPath()))
	return nil
}
