package notion

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

	"visionnaires-go/internal/model"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
	pageSize       = 100
)

var ErrNotFound = errors.New("notion object not found")

// APIError is the error body the service returns with non-2xx statuses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion error: %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	token   string
	version string
	client  *http.Client
}

func NewClient(baseURL, token, version string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		version: version,
		client:  client,
	}
}

type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type QueryRequest struct {
	Sorts       []Sort `json:"sorts,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type QueryResponse struct {
	Results    []model.Record `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor"`
}

type BlocksResponse struct {
	Results    []model.Block `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor"`
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (QueryResponse, error) {
	if req.PageSize == 0 {
		req.PageSize = pageSize
	}
	var out QueryResponse
	err := c.do(ctx, http.MethodPost, "/databases/"+url.PathEscape(databaseID)+"/query", req, &out)
	return out, err
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(pageID), nil, &out)
	return out, err
}

func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string) (BlocksResponse, error) {
	query := url.Values{}
	query.Set("page_size", fmt.Sprint(pageSize))
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}
	var out BlocksResponse
	err := c.do(ctx, http.MethodGet, "/blocks/"+url.PathEscape(blockID)+"/children?"+query.Encode(), nil, &out)
	return out, err
}

func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]model.Property) (model.Record, error) {
	payload := map[string]any{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": properties,
	}
	var out model.Record
	err := c.do(ctx, http.MethodPost, "/pages", payload, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
