// SPDX-License-Identifier: MPL-2.0

package lzctool

import (
	"fmt"
	"strconv"
	"strings"
)

// ExitCode represents a process exit status code.
// Exit codes are in the range 0-255 on POSIX systems.
// The zero value (0) means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitStatusError reports a tool invocation that terminated with a non-zero
// exit status.
type ExitStatusError struct {
	// Args is the full argument vector of the failed invocation.
	Args []string
	// Code is the process exit code.
	Code ExitCode
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command %q exited with status %s", strings.Join(e.Args, " "), e.Code)
}
