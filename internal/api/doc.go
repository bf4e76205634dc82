// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the deskchat backend.
//
// Every call carries a bounded timeout and a bearer credential when a token
// is available. Failures collapse into a small taxonomy: transport errors
// (including timeout aborts), ErrNotAuthenticated for 401 responses, and
// ServerError for other non-2xx statuses. There are no automatic retries;
// a failed call surfaces once and the next attempt is user-initiated.
package api
