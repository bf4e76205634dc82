// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docs tracks the signed-in user's personal document list: the
// knowledge base the backend searches when answering questions. The
// registry mirrors the server's list and applies optimistic local removal
// on delete.
package docs
