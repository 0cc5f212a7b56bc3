// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the app manifest (lzc-manifest.yml) and rewrites
// its image references.
//
// Parsing uses yaml.v3 into typed structs for validation and for deriving
// the package artifact name. Rewriting deliberately does NOT round-trip
// through the YAML tree: it substitutes image references line by line so the
// file keeps its formatting, comments, and key order exactly as the author
// wrote them.
package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lzcship/lzcship/internal/issue"

	"gopkg.in/yaml.v3"
)

type (
	// Manifest is the application's declarative configuration.
	Manifest struct {
		SDKVersion  string             `yaml:"lzc-sdk-version"`
		Name        string             `yaml:"name"`
		Package     string             `yaml:"package"`
		Version     string             `yaml:"version"`
		Description string             `yaml:"description"`
		Application *Application       `yaml:"application"`
		Services    map[string]Service `yaml:"services"`

		// FilePath is where the manifest was loaded from.
		FilePath string `yaml:"-"`
	}

	// Application is the manifest's application section.
	Application struct {
		Subdomain      string `yaml:"subdomain"`
		BackgroundTask bool   `yaml:"background_task"`
	}

	// Service is a single container service entry.
	Service struct {
		Image       string   `yaml:"image"`
		Command     string   `yaml:"command"`
		Environment []string `yaml:"environment"`
	}
)

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read app manifest").
			WithResource(path).
			WithSuggestion("Run from the project root, or pass --project-dir").
			Wrap(err).
			Build()
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse app manifest").
			WithResource(path).
			WithSuggestion("Check the YAML syntax").
			Wrap(err).
			Build()
	}

	m.FilePath = path
	return m, nil
}

// Validate checks the fields every pipeline stage relies on. It returns all
// problems at once so users do not have to fix-and-rerun field by field.
func (m *Manifest) Validate() []error {
	var errs []error

	if m.Name == "" {
		errs = append(errs, fmt.Errorf("manifest is missing required field %q", "name"))
	}
	if m.Package == "" {
		errs = append(errs, fmt.Errorf("manifest is missing required field %q", "package"))
	}
	if m.Version == "" {
		errs = append(errs, fmt.Errorf("manifest is missing required field %q", "version"))
	}
	if m.Application == nil && len(m.Services) == 0 {
		errs = append(errs, fmt.Errorf("manifest declares neither an application section nor services"))
	}

	for name, svc := range m.Services {
		if svc.Image == "" {
			errs = append(errs, fmt.Errorf("service %q has no image", name))
		}
	}

	return errs
}

// ImageRefs returns the distinct image references of all services, sorted
// for deterministic iteration.
func (m *Manifest) ImageRefs() []string {
	seen := make(map[string]struct{}, len(m.Services))
	var refs []string
	for _, svc := range m.Services {
		if svc.Image == "" {
			continue
		}
		if _, ok := seen[svc.Image]; ok {
			continue
		}
		seen[svc.Image] = struct{}{}
		refs = append(refs, svc.Image)
	}
	sort.Strings(refs)
	return refs
}

// ArtifactName derives the package artifact file name, <Name>-<Version>.lpk.
func (m *Manifest) ArtifactName() string {
	return fmt.Sprintf("%s-%s.lpk", m.Name, m.Version)
}

// OnHost reports whether ref already points below the given registry host.
func OnHost(ref, host string) bool {
	return host != "" && strings.HasPrefix(ref, host+"/")
}
