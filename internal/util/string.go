// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for rigdiag.
package util

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// DefaultTruncateLength is the citation label limit used in compact mode.
const DefaultTruncateLength = 20

// Ellipsis is appended to truncated labels.
const Ellipsis = "..."

// UNICODE: Character counting happens on the NFC form so that a precomposed
// "é" and "e" + combining accent count as one character each. The kept text is
// always a prefix of the input as given; it is never re-normalized.

// Truncate bounds the display length of a label.
// If text has at most maxLength characters it is returned unchanged, otherwise
// the first maxLength-3 characters are kept and Ellipsis is appended, so the
// result is exactly maxLength characters long.
//
// Callers must pass maxLength > 3. Below that there is no room for the marker
// and the text is cut to maxLength characters without one.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if RuneLen(text) <= maxLength {
		return text
	}
	if maxLength <= len(Ellipsis) {
		return prefixChars(text, maxLength)
	}
	return prefixChars(text, maxLength-len(Ellipsis)) + Ellipsis
}

// prefixChars returns the longest prefix of text holding at most n NFC
// characters. Combining marks that fold into the last kept character stay
// attached to it.
func prefixChars(text string, n int) string {
	end := 0
	for end < len(text) {
		_, size := utf8.DecodeRuneInString(text[end:])
		if RuneLen(text[:end+size]) > n {
			break
		}
		end += size
	}
	return text[:end]
}

// RuneLen returns the number of characters in s after NFC normalization.
func RuneLen(s string) int {
	return len([]rune(norm.NFC.String(s)))
}

// FitWidth shortens s so it occupies at most width terminal cells.
// Double-width characters (CJK) count as 2 columns.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
