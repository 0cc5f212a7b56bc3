// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lzcship/lzcship/internal/manifest"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `lzcship validate` command.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the project files",
		Long: `Check that the project directory holds everything the release
pipeline needs: the app manifest, the build file, and the icon, with the
manifest parseable and its required fields present.

All problems are reported in one run. Exits non-zero when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, app)
		},
	}
}

func runValidate(cmd *cobra.Command, app *App) error {
	dir := app.ProjectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return app.fail(cmd, err)
		}
		dir = cwd
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Validating ")+CmdStyle.Render(dir))
	fmt.Fprintln(stdout)

	failures := 0

	if err := app.Tool.CheckInstalled(); err != nil {
		reportCheck(stdout, false, "packaging tool "+app.Config.Tool.Binary+" not found on PATH")
		failures++
	} else {
		reportCheck(stdout, true, "packaging tool "+app.Config.Tool.Binary+" found")
	}

	// File presence checks run individually so the report names every
	// missing file, unlike the pipeline's all-or-nothing prerequisite gate.
	files := []string{
		app.Config.Project.Manifest,
		app.Config.Project.Buildfile,
		app.Config.Project.Icon,
	}
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			reportCheck(stdout, false, name+" is missing")
			failures++
			continue
		}
		reportCheck(stdout, true, name+" found")
	}

	manifestPath := filepath.Join(dir, app.Config.Project.Manifest)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			reportCheck(stdout, false, "manifest does not parse: "+formatErrorForDisplay(err, verbose))
			failures++
		} else {
			reportCheck(stdout, true, "manifest parses")
			for _, verr := range m.Validate() {
				reportCheck(stdout, false, verr.Error())
				failures++
			}
			if errs := m.Validate(); len(errs) == 0 {
				reportCheck(stdout, true, fmt.Sprintf("manifest fields complete (%d image reference(s))", len(m.ImageRefs())))
			}
		}
	}

	fmt.Fprintln(stdout)
	if failures > 0 {
		fmt.Fprintf(stdout, "%s %s\n", errorIcon, ErrorStyle.Render(fmt.Sprintf("%d check(s) failed", failures)))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintf(stdout, "%s %s\n", successIcon, SuccessStyle.Render("Project is ready to release"))
	return nil
}

func reportCheck(w io.Writer, ok bool, msg string) {
	icon := successIcon
	if !ok {
		icon = errorIcon
	}
	fmt.Fprintf(w, "  %s %s\n", icon, msg)
}
