// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/url"
	"sync"

	"github.com/jeranaias/deskchat-tui/internal/model"
)

// tokenParam is the one-time query parameter the backend appends when it
// redirects back after sign-in.
const tokenParam = "token"

// =============================================================================
// STATUS
// =============================================================================

// Status is the session's place in the authentication state machine.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
	StatusAuthFailed
)

// String returns a display name for the status.
func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "signing in"
	case StatusAuthenticated:
		return "signed in"
	case StatusAuthFailed:
		return "sign-in failed"
	default:
		return "signed out"
	}
}

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Gateway is the slice of the backend client the session needs.
type Gateway interface {
	AuthURL(ctx context.Context) (string, error)
	Me(ctx context.Context) (*model.Identity, error)
}

// URLOpener hands an authorization URL to the user agent. The production
// implementation opens the system browser.
type URLOpener interface {
	Open(url string) error
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the single source of truth for the authenticated user.
//
// Invariant: status is StatusAuthenticated iff both the token and the
// identity are present; any identity-fetch failure clears both in one
// transition.
type Session struct {
	mu sync.Mutex

	gateway Gateway
	store   TokenStore
	opener  URLOpener

	token     string
	user      *model.Identity
	status    Status
	lastError string
}

// Snapshot is an atomic view of the session for the render surface.
type Snapshot struct {
	Status    Status
	User      *model.Identity
	LastError string
}

// NewSession creates a session over the given gateway, token store and
// URL opener.
func NewSession(gateway Gateway, store TokenStore, opener URLOpener) *Session {
	return &Session{
		gateway: gateway,
		store:   store,
		opener:  opener,
		status:  StatusUnauthenticated,
	}
}

// Bootstrap inspects the launch URL for a one-time token parameter. When
// present the token is persisted and stripped from the returned URL so it is
// never re-submitted; otherwise any previously persisted token is adopted.
// A token of either origin moves the session to StatusAuthenticating,
// pending RefreshIdentity.
func (s *Session) Bootstrap(launchURL *url.URL) *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()

	if launchURL != nil {
		query := launchURL.Query()
		if token := query.Get(tokenParam); token != "" {
			s.store.SetToken(token)
			s.token = token
			s.status = StatusAuthenticating

			stripped := *launchURL
			query.Del(tokenParam)
			stripped.RawQuery = query.Encode()
			return &stripped
		}
	}

	if token, ok := s.store.Token(); ok {
		s.token = token
		s.status = StatusAuthenticating
	}
	return launchURL
}

// RefreshIdentity fetches the identity behind the active token. Success
// completes the transition to StatusAuthenticated. Any failure, of any
// kind, is fatal to the session: token and identity are cleared together
// and the error text is recorded for the status banner.
func (s *Session) RefreshIdentity(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.user = nil
		s.status = StatusUnauthenticated
		s.mu.Unlock()
		return nil
	}
	s.status = StatusAuthenticating
	s.mu.Unlock()

	user, err := s.gateway.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.store.Clear()
		s.token = ""
		s.user = nil
		s.status = StatusAuthFailed
		s.lastError = err.Error()
		return err
	}

	s.user = user
	s.status = StatusAuthenticated
	s.lastError = ""
	return nil
}

// Login requests an authorization URL and hands it to the user agent. It
// does not complete authentication; completion happens through Bootstrap
// after the redirect back.
func (s *Session) Login(ctx context.Context) error {
	authURL, err := s.gateway.AuthURL(ctx)
	if err != nil {
		return err
	}
	return s.opener.Open(authURL)
}

// Logout clears the persisted token and in-memory identity synchronously.
// No network call is involved.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.lastError = ""
}

// ClearError acknowledges a failed sign-in, returning to the signed-out
// state.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusAuthFailed {
		s.lastError = ""
		s.status = StatusUnauthenticated
	}
}

// IsAuthenticated reports whether the session holds both a token and an
// identity.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated
}

// Snapshot returns an atomic view of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Status: s.status, LastError: s.lastError}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}
