// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package motion decides how solution cards move.
//
// It has three parts:
//   - Detector: the reduced-motion preference, sampled from a chain of
//     sources and watched for changes.
//   - Resolve: the phase parameters (durations, delays, easing, hidden
//     poses) for a preference.
//   - Transition: one card's timeline, driven by a small statekit phase
//     machine and sampled on the caller's clock.
package motion
