// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/lzcship/lzcship/internal/project"
	"github.com/lzcship/lzcship/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// newPublishCommand creates the `lzcship publish` command.
func newPublishCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Submit the built package to the app store",
		Long: `Submit the built <Name>-<Version>.lpk package to the app store.

Requires an authenticated app store session and a previously built
artifact. Asks for confirmation before submitting unless --yes is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd, app)
		},
	}
}

func runPublish(cmd *cobra.Command, app *App) error {
	p, err := app.loadProject()
	if err != nil {
		return app.fail(cmd, err)
	}

	ok, err := confirmPublish(app, p)
	if err != nil {
		return app.fail(cmd, err)
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Publish canceled\n", infoIcon)
		return nil
	}

	if err := app.stagePublish(cmd.Context(), p); err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Published %s\n", successIcon, CmdStyle.Render(p.Manifest.ArtifactName()))
	return nil
}

// confirmPublish asks the user before submitting, honoring --yes. A prompt
// dismissed with ctrl-c counts as a decline, not an error.
func confirmPublish(app *App, p *project.Project) (bool, error) {
	if assumeYes {
		return true, nil
	}

	ok, err := tui.Confirm(
		fmt.Sprintf("Publish %s to the app store?", p.Manifest.ArtifactName()),
		fmt.Sprintf("%s version %s", p.Manifest.Name, p.Manifest.Version),
		false,
		tui.DefaultConfig(),
	)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
