// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/lzcship/lzcship/internal/config"
	"github.com/lzcship/lzcship/internal/hooks"
	"github.com/lzcship/lzcship/internal/issue"
	"github.com/lzcship/lzcship/internal/lzctool"
	"github.com/lzcship/lzcship/internal/project"
	"github.com/lzcship/lzcship/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: Cobra command handlers receive an App and
	// delegate the pipeline work through its service interfaces.
	App struct {
		Config     *config.Config
		Tool       ToolService
		Hooks      HookRunner
		Logger     *log.Logger
		ProjectDir string

		stdout io.Writer
		stderr io.Writer

		// choose presents a single-select prompt. A seam over tui.Choose so
		// menu tests can script selections.
		choose func(title string, options []string, cfg tui.Config) (string, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults; tests supply fakes.
	Dependencies struct {
		Config     *config.Config
		Tool       ToolService
		Hooks      HookRunner
		Logger     *log.Logger
		ProjectDir string
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// ToolService abstracts the external packaging CLI so command handlers
	// and stage logic can be exercised without subprocesses.
	ToolService interface {
		CheckInstalled() error
		Build(ctx context.Context, dir string) error
		CopyImage(ctx context.Context, dir, ref string) (string, error)
		LoginStatus(ctx context.Context) error
		Publish(ctx context.Context, dir, artifact string) error
		Version(ctx context.Context) (string, error)
	}

	// HookRunner runs configured hook snippets around pipeline stages.
	HookRunner interface {
		Run(ctx context.Context, hook hooks.Hook, dir string, extraEnv []string, stdout, stderr io.Writer) error
	}

	// hookRunnerFunc adapts the hooks package to the HookRunner interface.
	hookRunnerFunc struct{}
)

// Run implements HookRunner with the embedded shell interpreter.
func (hookRunnerFunc) Run(ctx context.Context, hook hooks.Hook, dir string, extraEnv []string, stdout, stderr io.Writer) error {
	return hooks.Run(ctx, hook, dir, extraEnv, stdout, stderr)
}

// NewApp creates an App with defaults for omitted dependencies. The
// configuration is loaded later, once flag values are known (see
// configure), unless a config was injected.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{ReportTimestamp: false})
	}
	if deps.Hooks == nil {
		deps.Hooks = hookRunnerFunc{}
	}

	return &App{
		Config:     deps.Config,
		Tool:       deps.Tool,
		Hooks:      deps.Hooks,
		Logger:     deps.Logger,
		ProjectDir: deps.ProjectDir,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		choose:     tui.Choose,
	}
}

// configure finishes App construction after Cobra parsed the global flags.
// Injected dependencies are left alone so tests keep their fakes.
func (a *App) configure(ctx context.Context) {
	if a.Config == nil {
		cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
		if err != nil {
			// Surface config problems but stay operational with defaults;
			// an explicit --config path has already failed hard by now.
			fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
			cfg = config.DefaultConfig()
		}
		a.Config = cfg
	}

	if a.Tool == nil {
		tool := lzctool.New(a.Config.Tool.Binary)
		tool.Stdout = a.stdout
		tool.Stderr = a.stderr
		tool.Logger = a.Logger
		a.Tool = tool
	}

	if projectDir != "" {
		a.ProjectDir = projectDir
	}

	if verbose || a.Config.UI.Verbose {
		a.Logger.SetLevel(log.DebugLevel)
	}
}

// loadProject resolves the project directory and parses its manifest.
func (a *App) loadProject() (*project.Project, error) {
	return project.Load(a.ProjectDir, a.Config)
}

// fail renders err to the user and converts it into a silent exit-code-1
// error. Known hard failures additionally get their troubleshooting card.
func (a *App) fail(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()

	if id, ok := issueFor(err); ok {
		if card := issue.Lookup(id); card != nil {
			if rendered, renderErr := card.Render("dark"); renderErr == nil {
				fmt.Fprintln(stderr, rendered)
			}
		}
	}

	fmt.Fprintf(stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, verbose))

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}

// issueFor maps sentinel errors onto troubleshooting cards.
func issueFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, lzctool.ErrNotLoggedIn):
		return issue.NotLoggedInId, true
	case errors.Is(err, exec.ErrNotFound):
		return issue.ToolNotInstalledId, true
	case errors.Is(err, errArtifactMissing):
		return issue.ArtifactMissingId, true
	case errors.Is(err, os.ErrNotExist):
		return issue.ManifestNotFoundId, true
	}
	return 0, false
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
