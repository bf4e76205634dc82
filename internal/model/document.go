// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Document is an uploaded knowledge-base entry. The server owns these; the
// registry holds a read-through cache.
type Document struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	UploadDate *string `json:"upload_date"`
	Tags       string  `json:"tags"`
	Metadata   string  `json:"metadata"`
}
