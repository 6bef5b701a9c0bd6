// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for rigdiag.
//
// # Key Functions
//
// String Utilities:
//   - Truncate: character-count truncation with a "..." marker
//   - FitWidth: cell-width truncation for terminal layout
//   - RuneLen, StringWidth: character count and display width
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Shorten a citation label in compact mode
//	label := util.Truncate(source.Title, util.DefaultTruncateLength)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
