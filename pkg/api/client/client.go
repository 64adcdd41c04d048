package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Client provides typed access to the mini-journal API for interactive
// tools. It attaches the bearer token to every protected call and never
// interprets it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:4000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractError(resp.Body)
		return APIError{Status: resp.StatusCode, Message: msg}
	}

	if v == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractError understands both error shapes the API produces: a single
// message and a per-field list.
func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error  string `json:"error"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if payload.Error != "" {
		return strings.TrimSpace(payload.Error)
	}
	parts := make([]string, 0, len(payload.Errors))
	for _, fe := range payload.Errors {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

// TokenResponse captures the token payload emitted by the auth endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}

// Entry reflects the API's entry projection.
type Entry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Register creates an account and returns a fresh session token.
func (c *Client) Register(ctx context.Context, email, password string) (TokenResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, "", &resp); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, "", &resp); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// CreateEntry adds a dated entry for the authenticated user.
func (c *Client) CreateEntry(ctx context.Context, token, date, content string) (Entry, error) {
	body := map[string]string{
		"date":    date,
		"content": content,
	}
	var e Entry
	if err := c.do(ctx, http.MethodPost, "/entries", body, token, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListEntries returns all of the user's entries, newest date first.
func (c *Client) ListEntries(ctx context.Context, token string) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/entries", nil, token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateEntry replaces the content of an owned entry.
func (c *Client) UpdateEntry(ctx context.Context, token, entryID, content string) (Entry, error) {
	body := map[string]string{"content": content}
	path := fmt.Sprintf("/entries/%s", url.PathEscape(entryID))
	var e Entry
	if err := c.do(ctx, http.MethodPatch, path, body, token, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// DeleteEntry removes an owned entry.
func (c *Client) DeleteEntry(ctx context.Context, token, entryID string) error {
	path := fmt.Sprintf("/entries/%s", url.PathEscape(entryID))
	return c.do(ctx, http.MethodDelete, path, nil, token, nil)
}

// SortEntries orders entries by date descending in place, matching the
// server's ordering. Tools that mutate a local copy of the list call this
// after every mutation instead of re-fetching.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
