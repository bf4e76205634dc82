// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jeranaias/deskchat-tui/internal/api"
	"github.com/jeranaias/deskchat-tui/internal/model"
)

type fakeGateway struct {
	docs    []model.Document
	listErr error

	uploaded  []string
	uploadErr error

	deleted   []int64
	deleteErr error

	listCalls int
}

func (g *fakeGateway) Documents(context.Context) ([]model.Document, error) {
	g.listCalls++
	return g.docs, g.listErr
}

func (g *fakeGateway) UploadDocument(_ context.Context, filename string, r io.Reader) (*model.Document, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	g.uploaded = append(g.uploaded, filename)
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	return &model.Document{ID: 99, Title: filename}, nil
}

func (g *fakeGateway) DeleteDocument(_ context.Context, id int64) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, id)
	return nil
}

type fakeAuth struct {
	ok bool
}

func (a *fakeAuth) IsAuthenticated() bool { return a.ok }

func twoDocs() []model.Document {
	return []model.Document{
		{ID: 1, Title: "onboarding.pdf"},
		{ID: 2, Title: "runbook.md"},
	}
}

func TestRefresh(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})

	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if reg.Count() != 2 {
		t.Errorf("count = %d, want 2", reg.Count())
	}
	if reg.LastError() != "" {
		t.Errorf("last error = %q, want empty", reg.LastError())
	}
}

func TestRefreshSignedOutClears(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	auth := &fakeAuth{ok: true}
	reg := NewRegistry(gw, auth)
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	auth.ok = false
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("signed-out Refresh: %v", err)
	}
	if reg.Count() != 0 {
		t.Errorf("count = %d, want 0", reg.Count())
	}
	if gw.listCalls != 1 {
		t.Errorf("list calls = %d, want 1", gw.listCalls)
	}
}

func TestRefreshFailureKeepsStaleList(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	gw.listErr = errors.New("Failed to load documents (503)")
	if err := reg.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if reg.Count() != 2 {
		t.Errorf("stale list lost: count = %d", reg.Count())
	}
	if reg.LastError() != "Failed to load documents (503)" {
		t.Errorf("last error = %q", reg.LastError())
	}
}

func TestUploadRefreshesList(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})

	err := reg.Upload(context.Background(), "notes.txt", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(gw.uploaded) != 1 || gw.uploaded[0] != "notes.txt" {
		t.Errorf("uploaded = %v", gw.uploaded)
	}
	if gw.listCalls != 1 {
		t.Errorf("list calls after upload = %d, want 1", gw.listCalls)
	}
	if reg.Count() != 2 {
		t.Errorf("count = %d, want server list (2)", reg.Count())
	}
}

func TestUploadSignedOut(t *testing.T) {
	gw := &fakeGateway{}
	reg := NewRegistry(gw, &fakeAuth{ok: false})

	err := reg.Upload(context.Background(), "notes.txt", strings.NewReader("body"))
	if !errors.Is(err, api.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if len(gw.uploaded) != 0 {
		t.Errorf("upload reached the gateway while signed out")
	}
}

func TestUploadFailureLeavesRegistryUntouched(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs(), uploadErr: errors.New("Failed to upload document (400)")}
	reg := NewRegistry(gw, &fakeAuth{ok: true})
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	err := reg.Upload(context.Background(), "bad.bin", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if gw.listCalls != 1 {
		t.Errorf("failed upload still refreshed the list")
	}
	// The failure belongs to the caller; nothing local changes.
	if reg.Count() != 2 {
		t.Errorf("count = %d, want 2", reg.Count())
	}
	if reg.LastError() != "" {
		t.Errorf("last error = %q, want empty", reg.LastError())
	}
}

func TestDeleteOptimisticRemoval(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := reg.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	docs := reg.Documents()
	if len(docs) != 1 || docs[0].ID != 2 {
		t.Errorf("documents after delete = %v", docs)
	}
	// No list round trip beyond the initial refresh.
	if gw.listCalls != 1 {
		t.Errorf("list calls = %d, want 1", gw.listCalls)
	}
}

func TestDeleteFailureKeepsDocument(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	gw.deleteErr = errors.New("Failed to delete document (500)")
	if err := reg.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected delete error")
	}
	if reg.Count() != 2 {
		t.Errorf("document removed despite server failure")
	}
	if reg.LastError() != "" {
		t.Errorf("last error = %q, want empty", reg.LastError())
	}
}

func TestDeleteSignedOut(t *testing.T) {
	reg := NewRegistry(&fakeGateway{}, &fakeAuth{ok: false})
	if err := reg.Delete(context.Background(), 1); !errors.Is(err, api.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestDocumentsReturnsCopy(t *testing.T) {
	gw := &fakeGateway{docs: twoDocs()}
	reg := NewRegistry(gw, &fakeAuth{ok: true})
	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	docs := reg.Documents()
	docs[0].Title = "mutated"
	if reg.Documents()[0].Title == "mutated" {
		t.Error("Documents shares storage with the registry")
	}
}
