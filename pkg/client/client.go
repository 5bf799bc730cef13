package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

type Note struct {
	Id        int64     `json:"id"`
	Title     *string   `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateNoteInput struct {
	Title   *string
	Content string
}

// UpdateNoteInput describes a partial update. Nil fields are left out of the
// request; ClearTitle sends an explicit null title.
type UpdateNoteInput struct {
	Title      *string
	ClearTitle bool
	Content    *string
}

// APIError is a non-2xx answer from the notes API. Message is the server's
// error text when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notes api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	URL        string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		URL:        strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WebSocketURL maps the API base URL onto the note event stream endpoint.
func (c *Client) WebSocketURL() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("error parsing API URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/notes/ws"
	return u.String(), nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/%d", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, in CreateNoteInput) (*Note, error) {
	payload := map[string]interface{}{"content": in.Content}
	if in.Title != nil {
		payload["title"] = *in.Title
	}

	var note Note
	if err := c.do(ctx, http.MethodPost, "/notes", payload, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, in UpdateNoteInput) (*Note, error) {
	payload := map[string]interface{}{}
	if in.ClearTitle {
		payload["title"] = nil
	} else if in.Title != nil {
		payload["title"] = *in.Title
	}
	if in.Content != nil {
		payload["content"] = *in.Content
	}

	var note Note
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), payload, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil)
}

// Private functions

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	requestURL, err := url.JoinPath(c.URL, path)
	if err != nil {
		return fmt.Errorf("error building URL path: %w", err)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("error JSON-encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("error building API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error invoking API: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := validateResponse(resp)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("error JSON-decoding response body: %w", err)
	}
	return nil
}

func validateResponse(resp *http.Response) ([]byte, error) {
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBytes, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(respBytes, &envelope) == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return nil, apiErr
}

// Message extracts the text worth showing to a user from any client error.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
