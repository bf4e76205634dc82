// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the deskchat
// interface. Commands run the blocking work against the state owners and
// return one of these; Update re-reads the relevant snapshot in response.
package ui

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatCompletedMsg signals that a send finished, successfully or not. The
// outcome is already recorded in the conversation store.
type ChatCompletedMsg struct{}

// DepartmentsRefreshedMsg signals that the department list fetch finished.
type DepartmentsRefreshedMsg struct{}

// ResyncMsg asks for a snapshot re-read with no completed operation
// attached. The post-send poll tick uses it to surface the optimistic
// user message before the reply lands.
type ResyncMsg struct{}

// ArchiveLoadedMsg signals that stored conversations were read from disk.
type ArchiveLoadedMsg struct {
	Err error
}

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// IdentityRefreshedMsg signals that the identity fetch finished. The session
// snapshot carries the outcome.
type IdentityRefreshedMsg struct{}

// LoginStartedMsg signals that the sign-in URL was handed to the browser,
// or that doing so failed.
type LoginStartedMsg struct {
	Err error
}

// =============================================================================
// DOCUMENT MESSAGES
// =============================================================================

// DocumentsRefreshedMsg signals that the document list fetch finished.
type DocumentsRefreshedMsg struct {
	Err error
}

// DocumentDeletedMsg signals that a document delete finished.
type DocumentDeletedMsg struct {
	Err error
}

// DocumentUploadedMsg signals that a document upload finished. The list
// was refreshed as part of the upload when Err is nil.
type DocumentUploadedMsg struct {
	Err error
}
