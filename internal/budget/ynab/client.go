// Package ynab provides a client for the YNAB budget API.
package ynab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"ynabviz/internal/budget"
	"ynabviz/internal/core"
	"ynabviz/internal/log"
)

const (
	DefaultBaseURL = "https://api.ynab.com/v1"
	DefaultTimeout = 30 * time.Second
	// YNAB allows 200 requests per hour per token.
	DefaultRateLimit = rate.Limit(200.0 / 3600.0)
)

var _ budget.CategorySource = (*Client)(nil)

// Client calls the YNAB REST API with a personal access token.
type Client struct {
	baseURL    string
	token      string
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
		c.logger = logger.WithComponent(log.ComponentBudget)
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the sustained request rate and burst.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(DefaultRateLimit, 10),
		logger:     log.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer from YNAB.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("YNAB API error: %s: %s (status: %d, endpoint: %s)", e.Name, e.Message, e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("YNAB API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "YNAB API request",
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: path}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error.Detail != "" {
			apiErr.Name = er.Error.Name
			apiErr.Message = er.Error.Detail
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Hidden     bool   `json:"hidden"`
			Deleted    bool   `json:"deleted"`
			Categories []struct {
				ID       string `json:"id"`
				Name     string `json:"name"`
				Hidden   bool   `json:"hidden"`
				Deleted  bool   `json:"deleted"`
				Budgeted int64  `json:"budgeted"`
				Balance  int64  `json:"balance"`
				Activity int64  `json:"activity"`
			} `json:"categories"`
		} `json:"category_groups"`
		ServerKnowledge int64 `json:"server_knowledge"`
	} `json:"data"`
}

// CategoryGroups lists every category group of the budget in API order.
// Hidden and deleted entries are passed through unfiltered.
func (c *Client) CategoryGroups(ctx context.Context, budgetID string) ([]core.CategoryGroup, error) {
	var resp categoriesResponse
	path := fmt.Sprintf("/budgets/%s/categories", url.PathEscape(budgetID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	groups := make([]core.CategoryGroup, len(resp.Data.CategoryGroups))
	for i, g := range resp.Data.CategoryGroups {
		cats := make([]core.CategoryRecord, len(g.Categories))
		for j, cat := range g.Categories {
			cats[j] = core.CategoryRecord{
				Name:     cat.Name,
				Budgeted: cat.Budgeted,
				Balance:  cat.Balance,
				Activity: cat.Activity,
			}
		}
		groups[i] = core.CategoryGroup{Name: g.Name, Categories: cats}
	}
	return groups, nil
}
