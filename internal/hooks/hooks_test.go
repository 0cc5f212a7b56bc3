// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_EmptyScriptIsNoop(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Hook{Name: "pre_build", Script: "  \n "}, t.TempDir(), nil, io.Discard, io.Discard)
	if err != nil {
		t.Errorf("Run() with empty script error = %v", err)
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	hook := Hook{Name: "pre_build", Script: `echo "about to build $LZC_APP_NAME"`}
	env := []string{"LZC_APP_NAME=Memos"}

	if err := Run(context.Background(), hook, t.TempDir(), env, &stdout, io.Discard); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := stdout.String(); !strings.Contains(got, "about to build Memos") {
		t.Errorf("hook output = %q", got)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	t.Parallel()

	hook := Hook{Name: "pre_publish", Script: "exit 7"}
	err := Run(context.Background(), hook, t.TempDir(), nil, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("Run() should fail for exit 7")
	}

	var exitErr *ExitStatusError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %T, want *ExitStatusError", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("exit code = %d, want 7", exitErr.Code)
	}
	if exitErr.Hook != "pre_publish" {
		t.Errorf("hook name = %q", exitErr.Hook)
	}
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()

	hook := Hook{Name: "post_build", Script: "if then fi ((("}
	err := Run(context.Background(), hook, t.TempDir(), nil, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("Run() should fail for a syntax error")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("Run() error = %v, want syntax error mention", err)
	}
}

func TestRun_RunsInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var stdout bytes.Buffer
	hook := Hook{Name: "pre_build", Script: "pwd"}

	if err := Run(context.Background(), hook, dir, nil, &stdout, io.Discard); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("hook pwd = %q, want %q", got, want)
	}
}
