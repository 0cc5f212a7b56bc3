// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/lzcship/lzcship/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// Interactive menu entries, in display order.
const (
	menuBuild    = "1. Build package"
	menuCopy     = "2. Copy images to vendor registry"
	menuPublish  = "3. Publish to app store"
	menuAll      = "4. Run full release pipeline"
	menuInfo     = "5. Show project info"
	menuValidate = "6. Validate project"
	menuQuit     = "7. Quit"
)

var menuEntries = []string{
	menuBuild,
	menuCopy,
	menuPublish,
	menuAll,
	menuInfo,
	menuValidate,
	menuQuit,
}

// runMenu drives the interactive menu. A failed action is reported the same
// way its subcommand would report it, then the menu comes back; only quitting
// or canceling the prompt leaves the loop.
func runMenu(cmd *cobra.Command, app *App) error {
	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("lzcship")+SubtitleStyle.Render(" - release pipeline"))

	cfg := tui.DefaultConfig()

	for {
		choice, err := app.choose("What would you like to do?", menuEntries, cfg)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return app.fail(cmd, err)
		}

		if choice == menuQuit {
			return nil
		}

		// Subcommand handlers already render their own failures; the menu
		// just swallows the exit error and offers the next round.
		if err := dispatchMenu(cmd, app, choice); err != nil {
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorIcon, formatErrorForDisplay(err, verbose))
			}
		}

		fmt.Fprintln(stdout)
	}
}

func dispatchMenu(cmd *cobra.Command, app *App, choice string) error {
	switch choice {
	case menuBuild:
		return runBuild(cmd, app)
	case menuCopy:
		return runCopy(cmd, app)
	case menuPublish:
		return runPublish(cmd, app)
	case menuAll:
		return runAll(cmd, app)
	case menuInfo:
		return runInfo(cmd, app)
	case menuValidate:
		return runValidate(cmd, app)
	}
	return nil
}
