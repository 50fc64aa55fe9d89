package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/logger"
	"github.com/OFFIS-RIT/greenlens/pkg/search"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://html.duckduckgo.com/html/"
	DefaultMaxResults = 10
	userAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client queries the DuckDuckGo HTML endpoint. Requests are throttled so a
// run with several claims does not trip the endpoint's rate limiting.
type Client struct {
	baseURL    string
	maxResults int
	limiter    *rate.Limiter
	httpClient *http.Client
}

type Params struct {
	BaseURL           string
	MaxResults        int
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client
}

func New(params Params) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	limit := rate.Inf
	if params.RequestsPerSecond > 0 {
		limit = rate.Limit(params.RequestsPerSecond)
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		maxResults: maxResults,
		limiter:    rate.NewLimiter(limit, 1),
		httpClient: httpClient,
	}
}

// Search posts query to DuckDuckGo and returns at most MaxResults hits.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	results, err := parseResults(resp.Body, c.maxResults)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo results: %w", err)
	}
	logger.Debug("[Search] DuckDuckGo query finished", "query", query, "results", len(results))
	return results, nil
}
