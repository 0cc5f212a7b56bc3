// SPDX-License-Identifier: MPL-2.0

// Package project resolves a packaged-application project on disk: the
// required files, the parsed manifest, and the build artifact.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lzcship/lzcship/internal/config"
	"github.com/lzcship/lzcship/internal/issue"
	"github.com/lzcship/lzcship/internal/manifest"
)

// Project is a resolved project directory with its parsed manifest.
type Project struct {
	// Dir is the absolute project root.
	Dir string
	// Config is the effective lzcship configuration.
	Config *config.Config
	// Manifest is the parsed app manifest.
	Manifest *manifest.Manifest
}

// Load resolves dir (empty means the current directory), checks the
// required project files, and parses the manifest.
func Load(dir string, cfg *config.Config) (*Project, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = cwd
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	p := &Project{Dir: absDir, Config: cfg}
	if err := p.CheckPrerequisites(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return nil, err
	}
	p.Manifest = m

	return p, nil
}

// ManifestPath returns the app manifest location.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.Dir, p.Config.Project.Manifest)
}

// BuildfilePath returns the build configuration location.
func (p *Project) BuildfilePath() string {
	return filepath.Join(p.Dir, p.Config.Project.Buildfile)
}

// IconPath returns the app icon location.
func (p *Project) IconPath() string {
	return filepath.Join(p.Dir, p.Config.Project.Icon)
}

// ArtifactPath returns where the build drops the package artifact.
func (p *Project) ArtifactPath() string {
	return filepath.Join(p.Dir, p.Manifest.ArtifactName())
}

// ArtifactInfo stats the package artifact. The error is os.ErrNotExist-based
// when no artifact has been built yet.
func (p *Project) ArtifactInfo() (os.FileInfo, error) {
	return os.Stat(p.ArtifactPath())
}

// CheckPrerequisites verifies the files every stage depends on. All missing
// files are reported in one error.
func (p *Project) CheckPrerequisites() error {
	required := []string{
		p.Config.Project.Manifest,
		p.Config.Project.Buildfile,
		p.Config.Project.Icon,
	}

	var missing []string
	for _, name := range required {
		if _, err := os.Stat(filepath.Join(p.Dir, name)); err != nil {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return issue.NewErrorContext().
		WithOperation("check project files").
		WithResource(p.Dir).
		WithSuggestion("Run from the project root, or pass --project-dir").
		WithSuggestion("Missing: " + strings.Join(missing, ", ")).
		Wrap(os.ErrNotExist).
		Build()
}
