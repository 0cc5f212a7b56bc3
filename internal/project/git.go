// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// shortHashLen matches the abbreviated hash length git itself defaults to.
const shortHashLen = 7

// HeadRevision returns the abbreviated commit hash of the repository
// containing dir, walking up to find .git like git does. Projects that are
// not version controlled return an error; callers treat this as best effort.
func HeadRevision(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	hash := head.Hash().String()
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	return hash, nil
}
