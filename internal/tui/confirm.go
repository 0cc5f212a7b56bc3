// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question and returns the answer.
// Cancellation (esc/ctrl-c) surfaces as huh.ErrUserAborted.
func Confirm(title, description string, defaultYes bool, cfg Config) (bool, error) {
	result := defaultYes

	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&result)

	form := huh.NewForm(huh.NewGroup(confirm)).WithAccessible(cfg.Accessible)
	if err := form.Run(); err != nil {
		return false, err
	}
	return result, nil
}
