// Package client talks to the external shortening service.
package client

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

	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/axellelanca/surl/internal/metrics"
	"github.com/axellelanca/surl/internal/models"
)

// maxBodySize bounds the responses decoded from the service.
const maxBodySize = 8 << 20

// Config describes how to reach the shortening service.
type Config struct {
	// BaseURL of the service, without trailing slash.
	BaseURL string
	// HTTPClient used for every call. http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client performs the two calls the front-end needs. It never retries nor caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// NewFromTimeout creates a Client with its own http.Client. A zero timeout means none.
func NewFromTimeout(baseURL string, timeout time.Duration) *Client {
	return New(Config{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: timeout}})
}

// BaseURL returns the service base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type shortenRequest struct {
	LongURL string `json:"long_url"`
}

// Shorten asks the service to shorten longURL.
// Every failure is reported as customerrors.ErrShortenFailed, with the cause wrapped for logs.
func (c *Client) Shorten(ctx context.Context, longURL string) (*models.ShortenResult, error) {
	body, err := json.Marshal(shortenRequest{LongURL: longURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrShortenFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shorten", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrShortenFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result models.ShortenResult
	if err := c.do(req, "shorten", &result); err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrShortenFailed, err)
	}
	if strings.TrimSpace(result.ShortURL) == "" {
		return nil, fmt.Errorf("%w: response has no short_url", customerrors.ErrShortenFailed)
	}
	return &result, nil
}

// GetSummary fetches the long URL and the raw analytics of code.
// Every failure, including an unknown code, is reported as customerrors.ErrSummaryNotFound.
func (c *Client) GetSummary(ctx context.Context, code string) (*models.SummaryResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrSummaryNotFound, customerrors.ErrEmptyShortCode)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(code) + "/summary"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrSummaryNotFound, err)
	}

	var result models.SummaryResult
	if err := c.do(req, "summary", &result); err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrSummaryNotFound, err)
	}
	if result.Analytics == nil {
		result.Analytics = []models.AnalyticRecord{}
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, op string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
		}
		metrics.UpstreamRequests.WithLabelValues(op, outcome).Inc()
	}()

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return customerrors.ErrUpstreamStatus{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}
