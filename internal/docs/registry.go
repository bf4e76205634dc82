// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"io"
	"sync"

	"github.com/jeranaias/deskchat-tui/internal/api"
	"github.com/jeranaias/deskchat-tui/internal/model"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Gateway is the slice of the backend client the registry needs.
type Gateway interface {
	Documents(ctx context.Context) ([]model.Document, error)
	UploadDocument(ctx context.Context, filename string, r io.Reader) (*model.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
}

// Authorizer answers whether the user is signed in.
type Authorizer interface {
	IsAuthenticated() bool
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry mirrors the user's server-side document list. A failed refresh
// keeps the last good list so the UI degrades to stale data rather than
// an empty panel.
type Registry struct {
	mu sync.Mutex

	gateway Gateway
	auth    Authorizer

	documents []model.Document
	lastError string
}

// NewRegistry creates an empty registry.
func NewRegistry(gateway Gateway, auth Authorizer) *Registry {
	return &Registry{gateway: gateway, auth: auth}
}

// Refresh replaces the local list with the server's. Signed out it clears
// both the list and any recorded error without a network call. On failure
// the stale list is kept and the error recorded.
func (r *Registry) Refresh(ctx context.Context) error {
	if !r.auth.IsAuthenticated() {
		r.mu.Lock()
		r.documents = nil
		r.lastError = ""
		r.mu.Unlock()
		return nil
	}

	docs, err := r.gateway.Documents(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.lastError = err.Error()
		return err
	}
	r.documents = docs
	r.lastError = ""
	return nil
}

// Upload sends a document to the server and refreshes the full list so the
// local view carries the server-assigned id and extraction results. Failures
// surface only through the returned error; registry state is untouched.
func (r *Registry) Upload(ctx context.Context, filename string, content io.Reader) error {
	if !r.auth.IsAuthenticated() {
		return api.ErrNotAuthenticated
	}

	if _, err := r.gateway.UploadDocument(ctx, filename, content); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

// Delete removes a document on the server, then drops it from the local
// list without a round trip. The optimistic removal only happens after the
// server confirmed the delete; a failure leaves the registry untouched and
// surfaces only through the returned error.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	if !r.auth.IsAuthenticated() {
		return api.ErrNotAuthenticated
	}

	if err := r.gateway.DeleteDocument(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.documents[:0:0]
	for _, d := range r.documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	r.documents = kept
	return nil
}

// Documents returns a copy of the current list.
func (r *Registry) Documents() []model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := make([]model.Document, len(r.documents))
	copy(docs, r.documents)
	return docs
}

// LastError returns the most recent refresh error, or "" after a
// successful refresh. Only Refresh records here; upload and delete
// failures stay with their callers.
func (r *Registry) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// Count returns the number of locally known documents.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.documents)
}
