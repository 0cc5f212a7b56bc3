// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/lzcship/lzcship/internal/project"

	"github.com/spf13/cobra"
)

// newInfoCommand creates the `lzcship info` command.
func newInfoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show project information",
		Long: `Show the project's manifest fields, image references, artifact
status, git revision, and the packaging tool version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd, app)
		},
	}
}

func runInfo(cmd *cobra.Command, app *App) error {
	p, err := app.loadProject()
	if err != nil {
		return app.fail(cmd, err)
	}

	stdout := cmd.OutOrStdout()
	m := p.Manifest

	fmt.Fprintln(stdout, TitleStyle.Render(m.Name))
	printField(stdout, "Package", m.Package)
	printField(stdout, "Version", m.Version)
	if m.Description != "" {
		printField(stdout, "Description", m.Description)
	}
	if m.Application != nil && m.Application.Subdomain != "" {
		printField(stdout, "Subdomain", m.Application.Subdomain)
	}

	refs := m.ImageRefs()
	if len(refs) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, SubtitleStyle.Render("Images:"))
		for _, ref := range refs {
			fmt.Fprintf(stdout, "  %s %s\n", infoIcon, CmdStyle.Render(ref))
		}
	}

	fmt.Fprintln(stdout)
	printArtifactStatus(stdout, p)

	// Version control and tool details are best effort; a project without
	// git or an uninstalled tool must not fail `info`.
	if rev, err := project.HeadRevision(p.Dir); err == nil {
		printField(stdout, "Revision", rev)
	}
	if v, err := app.Tool.Version(cmd.Context()); err == nil {
		printField(stdout, "Tool", v)
	} else {
		app.Logger.Debug("packaging tool version unavailable", "err", err)
	}

	return nil
}

func printField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render(name+":"), value)
}

func printArtifactStatus(w io.Writer, p *project.Project) {
	fi, err := p.ArtifactInfo()
	if err != nil {
		fmt.Fprintf(w, "%s %s %s\n", warnIcon, CmdStyle.Render(p.Manifest.ArtifactName()), WarningStyle.Render("(not built)"))
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", successIcon, CmdStyle.Render(p.Manifest.ArtifactName()),
		SubtitleStyle.Render(fmt.Sprintf("(%d bytes, built %s)", fi.Size(), fi.ModTime().Format("2006-01-02 15:04:05"))))
}
