// SPDX-License-Identifier: MPL-2.0

package lzctool

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Success markers scraped from captured tool output. The tool reports some
// results only as text, so exit status zero alone is not enough.
const (
	// copiedImageMarker prefixes the line carrying the registry copy of an
	// image, e.g. "target image: registry.lazycat.cloud/pkg/app:1.0".
	copiedImageMarker = "target image:"

	// loggedInMarker must appear in `appstore whoami` output for an
	// authenticated session.
	loggedInMarker = "logged in"
)

// Sentinel errors for marker-based failures. The CLI layer maps these onto
// troubleshooting cards.
var (
	// ErrNotLoggedIn reports a missing or expired app store session.
	ErrNotLoggedIn = errors.New("not logged in to the app store")

	// ErrNoCopiedImage reports copy-image output without the target marker.
	ErrNoCopiedImage = errors.New("copy-image output did not report a target image")
)

// Build runs `<tool> project build` in dir, streaming its output.
func (t *Tool) Build(ctx context.Context, dir string) error {
	return t.run(ctx, dir, "project", "build")
}

// CopyImage runs `<tool> appstore copy-image <ref>` in dir and returns the
// vendor-registry reference scraped from the output.
func (t *Tool) CopyImage(ctx context.Context, dir, ref string) (string, error) {
	out, err := t.runCapture(ctx, dir, "appstore", "copy-image", ref)
	if err != nil {
		return "", fmt.Errorf("copy image %s: %w", ref, err)
	}

	copied, ok := ParseCopiedImage(out)
	if !ok {
		return "", fmt.Errorf("copy image %s: %w", ref, ErrNoCopiedImage)
	}
	return copied, nil
}

// LoginStatus runs `<tool> appstore whoami` and checks for an authenticated
// session. Both a non-zero exit and a missing marker mean ErrNotLoggedIn.
func (t *Tool) LoginStatus(ctx context.Context) error {
	out, err := t.runCapture(ctx, "", "appstore", "whoami")

	var exitErr *ExitStatusError
	if errors.As(err, &exitErr) {
		return ErrNotLoggedIn
	}
	if err != nil {
		return err
	}

	if !strings.Contains(strings.ToLower(out), loggedInMarker) {
		return ErrNotLoggedIn
	}
	return nil
}

// Publish runs `<tool> appstore publish <artifact>` in dir, streaming its
// output.
func (t *Tool) Publish(ctx context.Context, dir, artifact string) error {
	return t.run(ctx, dir, "appstore", "publish", artifact)
}

// Version returns the tool's version string, best effort.
func (t *Tool) Version(ctx context.Context) (string, error) {
	out, err := t.runCapture(ctx, "", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ParseCopiedImage scans copy-image output for the target image marker and
// returns the reference after it.
func ParseCopiedImage(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if !strings.HasPrefix(lower, copiedImageMarker) {
			continue
		}
		ref := strings.TrimSpace(trimmed[len(copiedImageMarker):])
		if ref != "" {
			return ref, true
		}
	}
	return "", false
}
