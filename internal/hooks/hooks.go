// SPDX-License-Identifier: MPL-2.0

// Package hooks runs user-configured shell snippets around pipeline stages.
//
// Snippets execute in an embedded POSIX shell interpreter (mvdan.cc/sh)
// rather than the system shell, so hooks behave identically across
// platforms and no /bin/sh is required.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Hook is a named shell snippet from the configuration.
type Hook struct {
	// Name identifies the hook (e.g. "pre_build") in errors.
	Name string
	// Script is the shell snippet. Empty snippets are a no-op.
	Script string
}

// ExitStatusError reports a hook that exited non-zero.
type ExitStatusError struct {
	Hook string
	Code int
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("hook %q exited with status %d", e.Hook, e.Code)
}

// Run executes the hook in dir with extraEnv (KEY=VALUE pairs) appended to
// the process environment, writing output to stdout/stderr. A failing hook
// fails the surrounding stage.
func Run(ctx context.Context, hook Hook, dir string, extraEnv []string, stdout, stderr io.Writer) error {
	if strings.TrimSpace(hook.Script) == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(hook.Script), hook.Name)
	if err != nil {
		return fmt.Errorf("hook %q has a syntax error: %w", hook.Name, err)
	}

	env := append(os.Environ(), extraEnv...)

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &ExitStatusError{Hook: hook.Name, Code: int(exitStatus)}
		}
		return fmt.Errorf("hook %q failed: %w", hook.Name, err)
	}

	return nil
}
