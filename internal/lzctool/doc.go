// SPDX-License-Identifier: MPL-2.0

// Package lzctool wraps the external packaging CLI.
//
// The tool is an opaque collaborator: every operation is a synchronous
// subprocess invocation, and outcomes are judged by exit status plus, where
// the tool communicates results only through text, by scraping markers from
// captured output. Absence of an expected marker fails the operation even
// when the process exited zero.
package lzctool
