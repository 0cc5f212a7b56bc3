// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/huh"
)

// Choose presents a single-select list and returns the chosen option.
// Cancellation (esc/ctrl-c) surfaces as huh.ErrUserAborted.
func Choose(title string, options []string, cfg Config) (string, error) {
	var result string

	sel := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&result)

	form := huh.NewForm(huh.NewGroup(sel)).WithAccessible(cfg.Accessible)
	if err := form.Run(); err != nil {
		return "", err
	}
	return result, nil
}
