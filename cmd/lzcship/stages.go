// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/lzcship/lzcship/internal/hooks"
	"github.com/lzcship/lzcship/internal/issue"
	"github.com/lzcship/lzcship/internal/manifest"
	"github.com/lzcship/lzcship/internal/project"
)

// errArtifactMissing reports a missing package artifact: a publish attempted
// before any build, or a build that exited zero without producing one.
var errArtifactMissing = errors.New("package artifact has not been built")

// stageBuild runs the pre_build hook, builds the package through the
// external tool, and verifies the artifact actually appeared.
func (a *App) stageBuild(ctx context.Context, p *project.Project) error {
	if err := a.runHook(ctx, "pre_build", a.Config.Hooks.PreBuild, p); err != nil {
		return err
	}

	if err := a.Tool.Build(ctx, p.Dir); err != nil {
		return err
	}

	if _, err := p.ArtifactInfo(); err != nil {
		return issue.NewErrorContext().
			WithOperation("verify package artifact").
			WithResource(p.Manifest.ArtifactName()).
			WithSuggestion("The packaging tool exited successfully but produced no artifact").
			WithSuggestion("Check the build file for an output override").
			Wrap(fmt.Errorf("%w: %w", errArtifactMissing, err)).
			Build()
	}

	return a.runHook(ctx, "post_build", a.Config.Hooks.PostBuild, p)
}

// stageCopyImages copies every off-registry image to the vendor registry
// and rewrites the manifest to the copied references. Images already below
// the vendor registry host are skipped, which makes re-runs no-ops.
// It returns the number of manifest lines rewritten.
func (a *App) stageCopyImages(ctx context.Context, p *project.Project) (int, error) {
	mapping := make(map[string]string)

	for _, ref := range p.Manifest.ImageRefs() {
		if manifest.OnHost(ref, a.Config.Registry.Host) {
			a.Logger.Debug("image already on vendor registry", "image", ref)
			fmt.Fprintf(a.stdout, "%s %s (already on %s)\n", infoIcon, CmdStyle.Render(ref), a.Config.Registry.Host)
			continue
		}

		copied, err := a.Tool.CopyImage(ctx, p.Dir, ref)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(a.stdout, "%s %s -> %s\n", successIcon, CmdStyle.Render(ref), CmdStyle.Render(copied))
		mapping[ref] = copied
	}

	if len(mapping) == 0 {
		return 0, nil
	}

	changed, err := manifest.RewriteImages(p.ManifestPath(), mapping)
	if err != nil {
		return 0, issue.WrapWithContext(err, "rewrite manifest images", p.ManifestPath())
	}

	// Later stages must see the rewritten references.
	reloaded, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return 0, err
	}
	p.Manifest = reloaded

	return changed, nil
}

// stagePublish checks the app store session, requires a built artifact, and
// submits it, with the publish hooks around the submission.
func (a *App) stagePublish(ctx context.Context, p *project.Project) error {
	if err := a.Tool.LoginStatus(ctx); err != nil {
		return err
	}

	if _, err := p.ArtifactInfo(); err != nil {
		return fmt.Errorf("%w: %s", errArtifactMissing, p.Manifest.ArtifactName())
	}

	if err := a.runHook(ctx, "pre_publish", a.Config.Hooks.PrePublish, p); err != nil {
		return err
	}

	if err := a.Tool.Publish(ctx, p.Dir, p.Manifest.ArtifactName()); err != nil {
		return err
	}

	return a.runHook(ctx, "post_publish", a.Config.Hooks.PostPublish, p)
}

// runHook executes a configured hook snippet with the app context exported.
func (a *App) runHook(ctx context.Context, name, script string, p *project.Project) error {
	if script == "" {
		return nil
	}

	a.Logger.Debug("running hook", "hook", name)
	env := []string{
		"LZC_APP_NAME=" + p.Manifest.Name,
		"LZC_APP_VERSION=" + p.Manifest.Version,
		"LZC_ARTIFACT=" + p.Manifest.ArtifactName(),
	}
	return a.Hooks.Run(ctx, hooks.Hook{Name: name, Script: script}, p.Dir, env, a.stdout, a.stderr)
}
