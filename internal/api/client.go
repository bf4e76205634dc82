// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/model"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is the default backend address.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout bounds every request. A request that exceeds it is
	// aborted and reported as a plain transport failure.
	DefaultTimeout = 8 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ErrNotAuthenticated is returned for any 401 response. Its text is shown
// to the user verbatim.
var ErrNotAuthenticated = errors.New("Not authenticated. Please sign in.")

// ServerError is a non-2xx, non-401 response. Detail carries the server's
// explanation when one was provided.
type ServerError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the current bearer token, if any. The auth token
// store implements it; tests inject fakes.
type TokenSource interface {
	Token() (string, bool)
}

// DepartmentInfo is a server-reported department entry.
type DepartmentInfo struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// HistoryItem is one prior conversational turn sent with a chat request.
type HistoryItem struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client talks to the deskchat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client for the given base URL. A nil TokenSource
// means requests never carry credentials.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		tokens: tokens,
	}
}

// WithTimeout overrides the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// setAuthHeader attaches the bearer credential when a token is present.
// Absence of a token simply omits the header; the backend answers 401 where
// credentials were required.
func (c *Client) setAuthHeader(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes the request and normalizes failures. fallback is the endpoint
// specific error text used when the server offered no detail.
func (c *Client) do(req *http.Request, fallback string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout aborts land here too and read the same as connectivity
		// failures.
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, body, fallback)
	}
	return body, nil
}

// readBody reads the response with a size limit.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// decodeError converts a non-2xx response into the error taxonomy. The
// backend wraps detail text as {"detail": "..."}; plain-text bodies are
// used as-is.
func decodeError(status int, body []byte, fallback string) error {
	if status == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}

	detail := ""
	var wrapped struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Detail != "" {
		detail = wrapped.Detail
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		detail = text
	}
	if detail == "" {
		detail = fmt.Sprintf("%s (%d)", fallback, status)
	}
	return &ServerError{Status: status, Detail: detail}
}

// =============================================================================
// PUBLIC ENDPOINTS
// =============================================================================

// Departments fetches the server's department list. No credentials required.
func (c *Client) Departments(ctx context.Context) ([]DepartmentInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/departments", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req, "Failed to load departments")
	if err != nil {
		return nil, err
	}

	var depts []DepartmentInfo
	if err := json.Unmarshal(body, &depts); err != nil {
		return nil, fmt.Errorf("failed to parse departments: %w", err)
	}
	return depts, nil
}

// AuthURL requests the external authorization URL that completes sign-in.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/google/login", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req, "Failed to start login")
	if err != nil {
		return "", err
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	return data.AuthorizationURL, nil
}

// =============================================================================
// AUTHENTICATED ENDPOINTS
// =============================================================================

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeader(req)

	body, err := c.do(req, "Failed to fetch user")
	if err != nil {
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse identity: %w", err)
	}
	return &identity, nil
}

// Documents lists the caller's knowledge-base documents.
func (c *Client) Documents(ctx context.Context) ([]model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeader(req)

	body, err := c.do(req, "Failed to load documents")
	if err != nil {
		return nil, err
	}

	var docs []model.Document
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}
	return docs, nil
}

// UploadDocument posts a file as multipart form field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (*model.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload source: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/document", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)

	body, err := c.do(req, "Upload failed")
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return &doc, nil
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/documents/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeader(req)

	_, err = c.do(req, "Failed to delete document")
	return err
}

// chatRequest is the POST /chat payload.
type chatRequest struct {
	Department string        `json:"department"`
	Message    string        `json:"message"`
	History    []HistoryItem `json:"history"`
}

// Chat sends a message to a department persona and returns the reply text.
// History is every turn prior to the message being sent.
func (c *Client) Chat(ctx context.Context, department, message string, history []HistoryItem) (string, error) {
	if history == nil {
		history = []HistoryItem{}
	}
	payload, err := json.Marshal(chatRequest{
		Department: department,
		Message:    message,
		History:    history,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeader(req)

	body, err := c.do(req, "Chat failed")
	if err != nil {
		return "", err
	}

	var data struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	return data.Reply, nil
}
