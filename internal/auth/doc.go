// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the authentication lifecycle: the bearer token, the
// authenticated identity, and the transitions between signed-in and
// signed-out states. Every other component gates its network calls on this
// package's answer to "who is using the client".
package auth
