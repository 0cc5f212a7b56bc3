// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/lzcship/lzcship/internal/pipeline"
	"github.com/lzcship/lzcship/internal/project"

	"github.com/spf13/cobra"
)

// newAllCommand creates the `lzcship all` command.
func newAllCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run the full release pipeline",
		Long: `Run the full release pipeline in order:

  1. build        Build the package
  2. copy-images  Copy images to the vendor registry and rewrite the manifest
  3. rebuild      Build again so the package carries the rewritten manifest
  4. publish      Submit the package to the app store

The pipeline halts on the first failing stage. When copy-images rewrites
no manifest lines the rebuild is skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAll(cmd, app)
		},
	}
}

func runAll(cmd *cobra.Command, app *App) error {
	p, err := app.loadProject()
	if err != nil {
		return app.fail(cmd, err)
	}

	ok, err := confirmPublish(app, p)
	if err != nil {
		return app.fail(cmd, err)
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Release canceled\n", infoIcon)
		return nil
	}

	if err := app.runReleasePipeline(cmd.Context(), p); err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Released %s\n", successIcon, CmdStyle.Render(p.Manifest.ArtifactName()))
	return nil
}

// runReleasePipeline assembles and runs the four release stages. The
// rewritten count from copy-images decides whether the rebuild stage does
// anything.
func (a *App) runReleasePipeline(ctx context.Context, p *project.Project) error {
	var rewritten int

	stages := []pipeline.Stage{
		{
			Name: "build",
			Run: func(ctx context.Context) error {
				return a.stageBuild(ctx, p)
			},
		},
		{
			Name: "copy-images",
			Run: func(ctx context.Context) (err error) {
				rewritten, err = a.stageCopyImages(ctx, p)
				return err
			},
		},
		{
			Name: "rebuild",
			Run: func(ctx context.Context) error {
				if rewritten == 0 {
					a.Logger.Info("manifest unchanged, skipping rebuild")
					return nil
				}
				return a.stageBuild(ctx, p)
			},
		},
		{
			Name: "publish",
			Run: func(ctx context.Context) error {
				return a.stagePublish(ctx, p)
			},
		},
	}

	return pipeline.NewRunner(a.Logger).Run(ctx, stages)
}
