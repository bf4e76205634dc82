// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the conversation state: the list of past conversations,
// the active message buffer, department selection, and the pending-reply
// flag. All chat intents from the render surface land here; the store talks
// to the backend through a narrow gateway interface and gates sends on the
// auth session.
package chat
