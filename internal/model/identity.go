// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Identity is the authenticated user as reported by the backend. It is
// owned server-side and cached read-only by the auth session.
type Identity struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	PictureURL *string `json:"picture_url"`
	CreatedAt  *string `json:"created_at"`
	LastLogin  *string `json:"last_login"`
}
