// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCopyCommand creates the `lzcship copy` command.
func newCopyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy container images to the vendor registry",
		Long: `Copy the manifest's container images to the vendor registry and
rewrite the image references in the manifest to the copied locations.

Images already hosted on the vendor registry are skipped, so running
this command repeatedly is safe. Only "image:" lines in the manifest
are touched; formatting and comments stay as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCopy(cmd, app)
		},
	}
}

func runCopy(cmd *cobra.Command, app *App) error {
	p, err := app.loadProject()
	if err != nil {
		return app.fail(cmd, err)
	}

	changed, err := app.stageCopyImages(cmd.Context(), p)
	if err != nil {
		return app.fail(cmd, err)
	}

	stdout := cmd.OutOrStdout()
	if changed == 0 {
		fmt.Fprintf(stdout, "%s Manifest already points at the vendor registry, nothing to do\n", successIcon)
		return nil
	}

	fmt.Fprintf(stdout, "%s Rewrote %d image reference(s) in %s\n", successIcon, changed, CmdStyle.Render(p.ManifestPath()))
	return nil
}
