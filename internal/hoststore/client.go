package hoststore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/google/uuid"
)

// Client is a thin passthrough to the host platform's memory storage API.
// No caching, no retries: a failed call surfaces as *domain.StorageError and
// the caller decides what to tell the user.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type addRequest struct {
	Owner   string `json:"owner"`
	Content string `json:"content"`
}

type updateRequest struct {
	Content string `json:"content"`
}

func (c *Client) Add(ctx context.Context, owner, content string) (*domain.Memory, error) {
	var m domain.Memory
	if err := c.do(ctx, http.MethodPost, "/api/v1/memories", addRequest{Owner: owner, Content: content}, &m); err != nil {
		return nil, &domain.StorageError{Op: "add", Err: err}
	}
	return &m, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Memory, error) {
	var m domain.Memory
	path := "/api/v1/memories/" + id.String()
	if err := c.do(ctx, http.MethodPut, path, updateRequest{Content: content}, &m); err != nil {
		return nil, &domain.StorageError{Op: "update", Err: err}
	}
	return &m, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	path := "/api/v1/memories/" + id.String()
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (c *Client) List(ctx context.Context, owner string) ([]domain.Memory, error) {
	var memories []domain.Memory
	path := "/api/v1/memories?owner=" + url.QueryEscape(owner)
	if err := c.do(ctx, http.MethodGet, path, nil, &memories); err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	return memories, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("host API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
