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
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/foomo/notion-mcp/metrics"
	"github.com/foomo/notion-mcp/service/vo"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"

	defaultRetryAttempts = 3
	defaultPageSize      = 100
)

// ClientSettings configures the API client. Zero values fall back to
// the defaults above.
type ClientSettings struct {
	APIKey        string
	BaseURL       string
	Version       string
	RetryAttempts uint
	PageSize      int
}

// Client talks to the Notion API. Rate limited and 5xx responses are
// retried with backoff, list endpoints follow cursor pagination until
// exhausted.
type Client struct {
	settings   ClientSettings
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(settings ClientSettings, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	if settings.Version == "" {
		settings.Version = DefaultVersion
	}
	if settings.RetryAttempts == 0 {
		settings.RetryAttempts = defaultRetryAttempts
	}
	if settings.PageSize <= 0 {
		settings.PageSize = defaultPageSize
	}
	return &Client{
		settings:   settings,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetPage fetches page metadata.
func (c *Client) GetPage(ctx context.Context, pageID vo.PageID) (*Page, error) {
	page := &Page{}
	if err := c.do(ctx, "get_page", http.MethodGet, "/pages/"+string(pageID), nil, nil, page); err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", pageID, err)
	}
	return page, nil
}

// ListBlockChildren fetches all content blocks of a page or block,
// following pagination.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	cursor := ""
	for {
		query := url.Values{"page_size": []string{strconv.Itoa(c.settings.PageSize)}}
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}
		var page blockChildrenResponse
		if err := c.do(ctx, "list_block_children", http.MethodGet, "/blocks/"+blockID+"/children", query, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list children of %s: %w", blockID, err)
		}
		blocks = append(blocks, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			return blocks, nil
		}
		cursor = page.NextCursor
	}
}

// GetDatabase fetches database metadata.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	db := &Database{}
	if err := c.do(ctx, "get_database", http.MethodGet, "/databases/"+databaseID, nil, nil, db); err != nil {
		return nil, fmt.Errorf("failed to get database %s: %w", databaseID, err)
	}
	return db, nil
}

// QueryDatabase fetches all pages of a database, following pagination.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		body := databaseQueryRequest{PageSize: c.settings.PageSize, StartCursor: cursor}
		var page databaseQueryResponse
		if err := c.do(ctx, "query_database", http.MethodPost, "/databases/"+databaseID+"/query", nil, body, &page); err != nil {
			return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
		}
		pages = append(pages, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			return pages, nil
		}
		cursor = page.NextCursor
	}
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	endpoint := c.settings.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	err := retry.Do(
		func() error {
			return c.roundTrip(ctx, method, endpoint, payload, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.settings.RetryAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.logger.Warn("retrying notion request",
				zap.String("operation", operation),
				zap.Uint("attempt", attempt+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		metrics.RecordAPIRequest(operation, "error")
		return err
	}
	metrics.RecordAPIRequest(operation, "ok")
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)
	req.Header.Set("Notion-Version", c.settings.Version)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("notion request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.String("authorization", sanitizeSecret(c.settings.APIKey)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

// sanitizeSecret masks a credential down to its last four characters
// for request logs.
func sanitizeSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "***" + secret[len(secret)-4:]
}
