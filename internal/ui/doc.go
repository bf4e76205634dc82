// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea render surface for deskchat.
//
// The UI is a thin shell over the state owners in internal/chat,
// internal/auth and internal/docs: key presses dispatch commands that call
// into them off the render goroutine, completion messages trigger a fresh
// snapshot read, and View renders snapshots only.
package ui
