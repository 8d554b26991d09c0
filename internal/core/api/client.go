// Package api is the REST boundary to the Career Navigator backend. The
// four operations here are the only network calls the client makes; every
// failure is returned to the caller and never surfaced past the UI layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the backend at baseURL. All requests carry the
// bearer token and are bounded by timeout (a hung backend resolves as an
// error instead of wedging the UI's in-flight state).
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// HistoryRecord is one prior resume analysis. Only the fields the client
// reads are decoded.
type HistoryRecord struct {
	ID        int64     `json:"id"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	ID       int64  `json:"id"`
	JobRole  string `json:"job_role"`
	IsActive bool   `json:"is_active"`
}

type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// History fetches the user's analysis history.
func (c *Client) History(ctx context.Context) ([]HistoryRecord, error) {
	var records []HistoryRecord
	if err := c.do(ctx, "fetch history", http.MethodGet, "/career/history", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateSession starts a new mock-interview session for the given role.
func (c *Client) CreateSession(ctx context.Context, jobRole string) (Session, error) {
	var s Session
	body := map[string]string{"job_role": jobRole}
	if err := c.do(ctx, "create session", http.MethodPost, "/interview/sessions", body, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Messages fetches the full message history of a session, greeting included.
func (c *Client) Messages(ctx context.Context, sessionID int64) ([]Message, error) {
	var msgs []Message
	path := fmt.Sprintf("/interview/sessions/%d/messages", sessionID)
	if err := c.do(ctx, "fetch messages", http.MethodGet, path, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Chat sends one user turn and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, sessionID int64, message string) (Message, error) {
	var reply Message
	path := fmt.Sprintf("/interview/sessions/%d/chat", sessionID)
	body := map[string]string{"message": message}
	if err := c.do(ctx, "send message", http.MethodPost, path, body, &reply); err != nil {
		return Message{}, err
	}
	return reply, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
