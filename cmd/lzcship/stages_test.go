// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lzcship/lzcship/internal/config"
	"github.com/lzcship/lzcship/internal/hooks"
	"github.com/lzcship/lzcship/internal/issue"
	"github.com/lzcship/lzcship/internal/lzctool"
	"github.com/lzcship/lzcship/internal/project"
)

const testManifest = `lzc-sdk-version: 0.1
name: myapp
package: cloud.example.myapp
version: 1.2.3
application:
  subdomain: myapp
services:
  web:
    image: docker.io/library/nginx:1.25
  db:
    image: docker.io/library/postgres:16
`

// fakeTool is a ToolService test double. Build drops the artifact file when
// buildWorks is set, mirroring what the real packaging tool does.
type fakeTool struct {
	installErr  error
	buildWorks  bool
	buildErr    error
	copyErr     error
	loginErr    error
	publishErr  error
	artifactDir string
	artifact    string

	buildCalls   int
	copiedRefs   []string
	publishCalls int
}

func (f *fakeTool) CheckInstalled() error { return f.installErr }

func (f *fakeTool) Build(_ context.Context, _ string) error {
	f.buildCalls++
	if f.buildErr != nil {
		return f.buildErr
	}
	if f.buildWorks {
		path := filepath.Join(f.artifactDir, f.artifact)
		if err := os.WriteFile(path, []byte("lpk"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTool) CopyImage(_ context.Context, _ string, ref string) (string, error) {
	if f.copyErr != nil {
		return "", f.copyErr
	}
	f.copiedRefs = append(f.copiedRefs, ref)
	return "registry.lazycat.cloud/copied/" + filepath.Base(ref), nil
}

func (f *fakeTool) LoginStatus(_ context.Context) error { return f.loginErr }

func (f *fakeTool) Publish(_ context.Context, _ string, _ string) error {
	f.publishCalls++
	return f.publishErr
}

func (f *fakeTool) Version(_ context.Context) (string, error) { return "lzc-cli 1.0.0-test", nil }

// recordingHooks records hook invocations in order.
type recordingHooks struct {
	ran []string
	err error
}

func (r *recordingHooks) Run(_ context.Context, hook hooks.Hook, _ string, _ []string, _, _ io.Writer) error {
	r.ran = append(r.ran, hook.Name)
	return r.err
}

// newTestProject writes a valid project into a temp dir and returns it
// loaded, together with an App wired to the given fakes.
func newTestProject(t *testing.T, tool *fakeTool, hookRunner HookRunner) (*App, *project.Project) {
	t.Helper()

	dir := t.TempDir()
	writeProjectFile(t, dir, "lzc-manifest.yml", testManifest)
	writeProjectFile(t, dir, "lzc-build.yml", "steps: []\n")
	writeProjectFile(t, dir, "icon.png", "\x89PNG")

	cfg := config.DefaultConfig()
	if hookRunner == nil {
		hookRunner = &recordingHooks{}
	}

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{
		Config:     cfg,
		Tool:       tool,
		Hooks:      hookRunner,
		ProjectDir: dir,
		Stdout:     &out,
		Stderr:     &errOut,
	})

	p, err := project.Load(dir, cfg)
	if err != nil {
		t.Fatalf("project.Load() error = %v", err)
	}

	if tool != nil {
		tool.artifactDir = dir
		tool.artifact = p.Manifest.ArtifactName()
	}

	return app, p
}

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestStageBuildRunsHooksAroundBuild(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{buildWorks: true}
	recorder := &recordingHooks{}
	app, p := newTestProject(t, tool, recorder)
	app.Config.Hooks = config.HooksConfig{PreBuild: "echo pre", PostBuild: "echo post"}

	if err := app.stageBuild(context.Background(), p); err != nil {
		t.Fatalf("stageBuild() error = %v", err)
	}

	want := []string{"pre_build", "post_build"}
	if len(recorder.ran) != len(want) {
		t.Fatalf("hooks ran = %v, want %v", recorder.ran, want)
	}
	for i, name := range want {
		if recorder.ran[i] != name {
			t.Errorf("hook[%d] = %q, want %q", i, recorder.ran[i], name)
		}
	}
}

func TestStageBuildFailsWhenArtifactMissing(t *testing.T) {
	t.Parallel()

	// Tool exits zero but never writes the artifact.
	tool := &fakeTool{buildWorks: false}
	app, p := newTestProject(t, tool, nil)

	err := app.stageBuild(context.Background(), p)
	if err == nil {
		t.Fatal("stageBuild() error = nil, want artifact verification failure")
	}
	if !errors.Is(err, errArtifactMissing) {
		t.Errorf("stageBuild() error = %v, want wrapped errArtifactMissing", err)
	}

	// The failure must route to the missing-artifact card, not the
	// missing-project-files card: every project file exists here.
	id, ok := issueFor(err)
	if !ok || id != issue.ArtifactMissingId {
		t.Errorf("issueFor() = %v, %v, want ArtifactMissingId", id, ok)
	}
}

func TestStageBuildPropagatesToolFailure(t *testing.T) {
	t.Parallel()

	toolErr := &lzctool.ExitStatusError{Args: []string{"project", "build"}, Code: 1}
	tool := &fakeTool{buildErr: toolErr}
	recorder := &recordingHooks{}
	app, p := newTestProject(t, tool, recorder)
	app.Config.Hooks = config.HooksConfig{PostBuild: "echo post"}

	err := app.stageBuild(context.Background(), p)
	var ese *lzctool.ExitStatusError
	if !errors.As(err, &ese) {
		t.Fatalf("stageBuild() error = %v, want ExitStatusError", err)
	}

	for _, name := range recorder.ran {
		if name == "post_build" {
			t.Error("post_build hook ran after a failed build")
		}
	}
}

func TestStageCopyImagesRewritesManifest(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{}
	app, p := newTestProject(t, tool, nil)

	changed, err := app.stageCopyImages(context.Background(), p)
	if err != nil {
		t.Fatalf("stageCopyImages() error = %v", err)
	}
	if changed != 2 {
		t.Errorf("stageCopyImages() changed = %d, want 2", changed)
	}
	if len(tool.copiedRefs) != 2 {
		t.Errorf("copied refs = %v, want 2 entries", tool.copiedRefs)
	}

	data, err := os.ReadFile(p.ManifestPath())
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "docker.io/library/nginx") {
		t.Error("manifest still references docker.io/library/nginx after copy")
	}
	if !strings.Contains(text, "registry.lazycat.cloud/copied/nginx:1.25") {
		t.Errorf("manifest missing copied nginx reference:\n%s", text)
	}

	// The in-memory manifest must follow the file.
	for _, ref := range p.Manifest.ImageRefs() {
		if !strings.HasPrefix(ref, "registry.lazycat.cloud/") {
			t.Errorf("reloaded manifest still holds %q", ref)
		}
	}
}

func TestStageCopyImagesSkipsVendorRegistry(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{}
	app, p := newTestProject(t, tool, nil)

	// First pass rewrites everything; the second must be a no-op.
	if _, err := app.stageCopyImages(context.Background(), p); err != nil {
		t.Fatalf("first stageCopyImages() error = %v", err)
	}
	tool.copiedRefs = nil

	changed, err := app.stageCopyImages(context.Background(), p)
	if err != nil {
		t.Fatalf("second stageCopyImages() error = %v", err)
	}
	if changed != 0 {
		t.Errorf("second stageCopyImages() changed = %d, want 0", changed)
	}
	if len(tool.copiedRefs) != 0 {
		t.Errorf("second pass copied %v, want none", tool.copiedRefs)
	}
}

func TestStagePublishRequiresLogin(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{loginErr: lzctool.ErrNotLoggedIn}
	app, p := newTestProject(t, tool, nil)

	err := app.stagePublish(context.Background(), p)
	if !errors.Is(err, lzctool.ErrNotLoggedIn) {
		t.Fatalf("stagePublish() error = %v, want ErrNotLoggedIn", err)
	}
	if tool.publishCalls != 0 {
		t.Errorf("publish called %d times despite missing login", tool.publishCalls)
	}
}

func TestStagePublishRequiresArtifact(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{}
	app, p := newTestProject(t, tool, nil)

	err := app.stagePublish(context.Background(), p)
	if !errors.Is(err, errArtifactMissing) {
		t.Fatalf("stagePublish() error = %v, want errArtifactMissing", err)
	}
	if tool.publishCalls != 0 {
		t.Errorf("publish called %d times without an artifact", tool.publishCalls)
	}
}

func TestStagePublishSubmitsArtifact(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{buildWorks: true}
	recorder := &recordingHooks{}
	app, p := newTestProject(t, tool, recorder)
	app.Config.Hooks = config.HooksConfig{PrePublish: "echo pre", PostPublish: "echo post"}

	if err := app.stageBuild(context.Background(), p); err != nil {
		t.Fatalf("stageBuild() error = %v", err)
	}
	recorder.ran = nil

	if err := app.stagePublish(context.Background(), p); err != nil {
		t.Fatalf("stagePublish() error = %v", err)
	}
	if tool.publishCalls != 1 {
		t.Errorf("publish calls = %d, want 1", tool.publishCalls)
	}

	want := []string{"pre_publish", "post_publish"}
	if len(recorder.ran) != len(want) {
		t.Fatalf("hooks ran = %v, want %v", recorder.ran, want)
	}
}

func TestRunReleasePipelineSkipsRebuildWhenUnchanged(t *testing.T) {
	t.Parallel()

	manifestOnVendor := strings.ReplaceAll(testManifest, "docker.io/library", "registry.lazycat.cloud/copied")

	tool := &fakeTool{buildWorks: true}
	app, p := newTestProject(t, tool, nil)
	writeProjectFile(t, p.Dir, "lzc-manifest.yml", manifestOnVendor)

	reloaded, err := project.Load(p.Dir, app.Config)
	if err != nil {
		t.Fatalf("project.Load() error = %v", err)
	}
	tool.artifact = reloaded.Manifest.ArtifactName()

	if err := app.runReleasePipeline(context.Background(), reloaded); err != nil {
		t.Fatalf("runReleasePipeline() error = %v", err)
	}
	if tool.buildCalls != 1 {
		t.Errorf("build calls = %d, want 1 (rebuild skipped)", tool.buildCalls)
	}
	if tool.publishCalls != 1 {
		t.Errorf("publish calls = %d, want 1", tool.publishCalls)
	}
}

func TestRunReleasePipelineRebuildsAfterRewrite(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{buildWorks: true}
	app, p := newTestProject(t, tool, nil)

	if err := app.runReleasePipeline(context.Background(), p); err != nil {
		t.Fatalf("runReleasePipeline() error = %v", err)
	}
	if tool.buildCalls != 2 {
		t.Errorf("build calls = %d, want 2 (build + rebuild)", tool.buildCalls)
	}
	if tool.publishCalls != 1 {
		t.Errorf("publish calls = %d, want 1", tool.publishCalls)
	}
}

func TestRunReleasePipelineHaltsOnFirstFailure(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{buildErr: errors.New("build exploded")}
	app, p := newTestProject(t, tool, nil)

	err := app.runReleasePipeline(context.Background(), p)
	if err == nil {
		t.Fatal("runReleasePipeline() error = nil, want build failure")
	}
	if tool.publishCalls != 0 {
		t.Errorf("publish called %d times after a failed build", tool.publishCalls)
	}
	if len(tool.copiedRefs) != 0 {
		t.Errorf("images copied after a failed build: %v", tool.copiedRefs)
	}
}
