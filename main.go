// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/lzcship/lzcship/cmd/lzcship"

func main() {
	cmd.Execute()
}
