// Package notion writes the category summary to a Notion page.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"ynabviz/internal/log"
	"ynabviz/internal/workspace"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultTimeout = 30 * time.Second
	// Notion allows an average of three requests per second per integration.
	DefaultRateLimit = 3
	APIVersion       = "2022-06-28"

	// LastUpdatedProperty is the date property set on every write.
	LastUpdatedProperty = "Last Updated"
)

var _ workspace.Writer = (*Client)(nil)

// Client updates one Notion page through the public REST API.
type Client struct {
	baseURL    string
	token      string
	pageID     string
	httpClient *http.Client
	logger     *log.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.WithComponent(log.ComponentWorkspace)
	}
}

func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

func NewClient(token, pageID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		pageID:     pageID,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     log.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer from Notion.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error: %s %s (status: %d, endpoint: %s)", e.Code, e.Message, e.StatusCode, e.Endpoint)
}

// Write stamps the page's Last Updated property and appends a table with
// one row per category. The two calls are not atomic: a failed append
// leaves the new timestamp in place.
func (c *Client) Write(ctx context.Context, u workspace.Update) (workspace.Result, error) {
	page := url.PathEscape(c.pageID)

	props := pageUpdate{Properties: map[string]property{
		LastUpdatedProperty: {Date: &dateValue{Start: u.UpdatedAt.Format(time.RFC3339)}},
	}}
	if err := c.patch(ctx, "/pages/"+page, props, nil); err != nil {
		return workspace.Result{}, fmt.Errorf("update page properties: %w", err)
	}

	rows := workspace.Rows(u.Categories)
	var appended appendResponse
	if err := c.patch(ctx, "/blocks/"+page+"/children", tableAppend(rows), &appended); err != nil {
		return workspace.Result{}, fmt.Errorf("append category table: %w", err)
	}

	c.logger.InfoContext(ctx, "Notion page updated",
		log.FieldCategories, len(rows),
		"page_id", c.pageID,
		"blocks", len(appended.Results))
	return workspace.Result{Target: c.pageID, Rows: len(rows)}, nil
}

func (c *Client) patch(ctx context.Context, path string, payload, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(raw), Endpoint: path}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			apiErr.Code = er.Code
			apiErr.Message = er.Message
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
