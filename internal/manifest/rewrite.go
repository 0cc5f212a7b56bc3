// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"os"
	"regexp"
	"strings"
)

// imageLineRE matches a YAML "image:" scalar line, capturing indentation and
// key (1), optional opening quote (2), the reference itself (3), optional
// closing quote (4), and any trailing whitespace/comment (5).
var imageLineRE = regexp.MustCompile(`^(\s*(?:-\s+)?image:\s*)(["']?)([^"'#\s]+)(["']?)(\s*(?:#.*)?)$`)

// RewriteText substitutes image references on "image:" lines of a manifest
// document according to mapping, leaving every other line untouched. It
// returns the rewritten document and the number of lines changed.
//
// Applying the same mapping twice is a no-op: once a reference has been
// replaced it no longer appears as a mapping key.
func RewriteText(text string, mapping map[string]string) (string, int) {
	if len(mapping) == 0 {
		return text, 0
	}

	lines := strings.Split(text, "\n")
	changed := 0

	for i, line := range lines {
		m := imageLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		target, ok := mapping[m[3]]
		if !ok || target == m[3] {
			continue
		}
		lines[i] = m[1] + m[2] + target + m[4] + m[5]
		changed++
	}

	if changed == 0 {
		return text, 0
	}
	return strings.Join(lines, "\n"), changed
}

// RewriteImages applies RewriteText to the manifest file in place. The file
// is only written when at least one line changed.
func RewriteImages(path string, mapping map[string]string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	rewritten, changed := RewriteText(string(data), mapping)
	if changed == 0 {
		return 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
		return 0, err
	}
	return changed, nil
}
