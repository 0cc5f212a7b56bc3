// SPDX-License-Identifier: MPL-2.0

package lzctool

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/lzcship/lzcship/internal/issue"

	"github.com/charmbracelet/log"
)

// Tool invokes the external packaging CLI.
type Tool struct {
	// Binary is the CLI name or path resolved through PATH.
	Binary string
	// Stdout and Stderr receive streamed output from run (not capture) calls.
	Stdout io.Writer
	Stderr io.Writer
	// Logger records invocations at debug level.
	Logger *log.Logger
}

// New creates a Tool for the given binary, streaming to the process
// stdout/stderr by default.
func New(binary string) *Tool {
	return &Tool{
		Binary: binary,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log.Default(),
	}
}

// CheckInstalled verifies the binary is resolvable through PATH.
func (t *Tool) CheckInstalled() error {
	if _, err := exec.LookPath(t.Binary); err != nil {
		return issue.NewErrorContext().
			WithOperation("locate packaging tool").
			WithResource(t.Binary).
			WithSuggestion("Install the packaging CLI, or set tool.binary in the lzcship config").
			Wrap(err).
			Build()
	}
	return nil
}

// run executes the tool with args in dir, streaming output. A non-zero exit
// is returned as *ExitStatusError.
func (t *Tool) run(ctx context.Context, dir string, args ...string) error {
	t.Logger.Debug("running packaging tool", "binary", t.Binary, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Dir = dir
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr
	cmd.Stdin = os.Stdin

	return t.wrapRunError(cmd.Run(), args)
}

// runCapture executes the tool with args in dir and returns its combined
// output. The output is returned even on failure so callers can surface it.
func (t *Tool) runCapture(ctx context.Context, dir string, args ...string) (string, error) {
	t.Logger.Debug("running packaging tool (captured)", "binary", t.Binary, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.String(), t.wrapRunError(err, args)
}

// wrapRunError normalizes exec errors: non-zero exits become
// *ExitStatusError, a missing binary becomes an actionable error, and
// anything else passes through.
func (t *Tool) wrapRunError(err error, args []string) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitStatusError{
			Args: append([]string{t.Binary}, args...),
			Code: ExitCode(exitErr.ExitCode()),
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return issue.NewErrorContext().
			WithOperation("locate packaging tool").
			WithResource(t.Binary).
			WithSuggestion("Install the packaging CLI, or set tool.binary in the lzcship config").
			Wrap(err).
			Build()
	}

	return issue.WrapWithContext(err, "invoke packaging tool", t.Binary)
}
