// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversations between runs of the client.
//
// The in-memory conversation list remains the source of truth while the
// client is running; the archive is a best-effort mirror, one JSON file per
// conversation, written atomically.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/util"
)

// ErrBadID rejects conversation ids that cannot name a file.
var ErrBadID = errors.New("invalid conversation id")

// Archive stores conversations as JSON files under BaseDir.
type Archive struct {
	// BaseDir is the directory conversations are written to.
	BaseDir string
}

// NewArchive creates an archive rooted at dir, creating it if needed.
func NewArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Archive{BaseDir: dir}, nil
}

// filePath maps a conversation id to its backing file.
func (a *Archive) filePath(id string) string {
	return filepath.Join(a.BaseDir, id+".json")
}

// validID rejects ids that would escape the archive directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/\\") && id != "." && id != ".."
}

// Save writes a conversation to disk, replacing any previous version.
func (a *Archive) Save(conv *model.Conversation) error {
	if !validID(conv.ID) {
		return ErrBadID
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(a.filePath(conv.ID), data, 0o644)
}

// Load reads one conversation by id.
func (a *Archive) Load(id string) (*model.Conversation, error) {
	if !validID(id) {
		return nil, ErrBadID
	}

	data, err := os.ReadFile(a.filePath(id))
	if err != nil {
		return nil, err
	}

	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// List returns every stored conversation, newest first. Files that fail to
// parse are skipped rather than failing the whole listing.
func (a *Archive) List() ([]*model.Conversation, error) {
	entries, err := os.ReadDir(a.BaseDir)
	if err != nil {
		return nil, err
	}

	convs := make([]*model.Conversation, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(a.BaseDir, entry.Name()))
		if err != nil {
			continue
		}
		var conv model.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			continue
		}
		convs = append(convs, &conv)
	}

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].Timestamp.After(convs[j].Timestamp)
	})
	return convs, nil
}
