// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/atotto/clipboard"

// Clipboard writes plain text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the platform clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardUnsupported reports whether no clipboard utility is available
// (for example xclip/xsel missing on Linux).
func ClipboardUnsupported() bool {
	return clipboard.Unsupported
}
