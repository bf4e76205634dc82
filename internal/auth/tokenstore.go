// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/deskchat-tui/internal/util"
)

// tokenFileName is the fixed key the token persists under.
const tokenFileName = "auth_token"

// TokenStore is the injected persistence capability for the bearer token.
// Writes are last-write-wins; user interaction serializes them in practice.
type TokenStore interface {
	// Token returns the persisted token, reporting whether one exists.
	Token() (string, bool)
	// SetToken persists a token, replacing any previous one.
	SetToken(token string) error
	// Clear removes the persisted token. Clearing an absent token is not
	// an error.
	Clear() error
}

// =============================================================================
// FILE-BACKED STORE
// =============================================================================

// FileTokenStore keeps the token in a 0600 file under the client's config
// directory, written atomically.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore creates a store rooted at dir.
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dir, tokenFileName)}
}

// Token reads the persisted token.
func (s *FileTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SetToken persists the token atomically.
func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return util.AtomicWriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// MemoryTokenStore is a TokenStore for tests and ephemeral sessions.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// Token returns the held token.
func (s *MemoryTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// SetToken replaces the held token.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear drops the held token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
