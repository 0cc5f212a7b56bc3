// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts used by the lzcship menu.
// It wraps charmbracelet/huh so the CLI layer never deals with form
// plumbing directly.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Config holds common configuration for prompts.
type Config struct {
	// Accessible renders prompts in plain, screen-reader friendly form.
	Accessible bool
}

// DefaultConfig enables accessible mode when stdin is not a terminal or the
// ACCESSIBLE environment variable is set, so prompts stay usable inside
// scripts and command substitution.
func DefaultConfig() Config {
	return Config{
		Accessible: !isInputTerminal() || os.Getenv("ACCESSIBLE") != "",
	}
}

func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
