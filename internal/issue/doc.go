// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types and troubleshooting cards.
//
// ActionableError carries the operation that failed, the resource involved,
// and suggestions for fixing the problem. The Issue catalog holds markdown
// troubleshooting cards for the hard failures (packaging tool missing, app
// store login required, project files absent) that are rendered with glamour
// when the corresponding error reaches the CLI layer.
package issue
