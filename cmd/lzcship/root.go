// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lzcship.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectDir overrides the project directory (default: cwd)
	projectDir string
	// assumeYes skips confirmation prompts
	assumeYes bool
)

// newRootCommand assembles the root command and all subcommands. Invoked
// with no arguments, the root drops into the interactive menu.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lzcship",
		Short: "Build and release packaged applications",
		Long: TitleStyle.Render("lzcship") + SubtitleStyle.Render(" - Build and release packaged applications") + `

lzcship drives the external packaging CLI through a four-stage release
pipeline: build the package, copy its container images to the vendor
registry, rebuild with the rewritten manifest, and publish to the app
store.

A project directory needs:
  lzc-manifest.yml   the app manifest (name, package, version, services)
  lzc-build.yml      the build configuration
  icon.png           the app icon

` + SubtitleStyle.Render("Examples:") + `
  lzcship                   Open the interactive menu
  lzcship validate          Check the project files
  lzcship build             Build the package artifact
  lzcship copy              Copy images to the vendor registry
  lzcship all               Run the full release pipeline
  lzcship publish           Submit the built package to the app store`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.configure(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, app)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lzcship/config.yaml)")
	root.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", "", "project directory (default is the current directory)")
	root.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "assume yes for confirmation prompts")

	root.AddCommand(newBuildCommand(app))
	root.AddCommand(newCopyCommand(app))
	root.AddCommand(newPublishCommand(app))
	root.AddCommand(newAllCommand(app))
	root.AddCommand(newInfoCommand(app))
	root.AddCommand(newValidateCommand(app))
	root.AddCommand(newConfigCommand(app))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	root := newRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
