// Package source acquires candidate profiles: from a schema-checked local
// file, from a paginated search API, and from GitHub as an enrichment.
package source

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/utils"
)

const (
	defaultUserAgent = "spigell/sourcing-agent"
	defaultPerPage   = 100
	defaultAttempts  = 3

	contentType     = "application/json"
	contentEncoding = "gzip"
)

// HTTPError is a non-200 API response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Client talks to a JSON API with bearer auth, gzip and page based pagination.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string

	// Attempts bounds tries per request; transient failures are retried.
	Attempts   uint
	RetryDelay time.Duration
	// PageDelay is waited between consecutive page requests.
	PageDelay time.Duration
}

func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		token:  token,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent:  defaultUserAgent,
		Attempts:   defaultAttempts,
		RetryDelay: 500 * time.Millisecond,
	}
}

// Item is one undecoded element of a paginated response.
type Item = map[string]any

type ItemResponse struct {
	Items   []Item `json:"items"`
	Found   int    `json:"found"`
	Pages   int    `json:"pages"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// GetItems fetches every page of a listing. maxPages of zero means no limit.
func (c *Client) GetItems(ctx context.Context, path string, q url.Values, maxPages int) ([]Item, error) {
	endpoint := c.APIURL + path

	var response ItemResponse
	if err := c.getJSON(ctx, endpoint, q, &response); err != nil {
		return nil, err
	}

	c.logger.Debug("got listing response",
		zap.String("path", path),
		zap.Int("found", response.Found),
		zap.Int("pages", response.Pages),
		zap.Int("per_page", response.PerPage),
	)

	items := append([]Item(nil), response.Items...)
	fetched := 1

	for response.Page < response.Pages-1 {
		if maxPages > 0 && fetched >= maxPages {
			c.logger.Debug("page limit reached", zap.Int("max_pages", maxPages))
			break
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))

		if err := utils.WaitFor(ctx, c.PageDelay); err != nil {
			return nil, err
		}

		next := response.Page + 1
		response = ItemResponse{}
		if err := c.getJSON(ctx, endpoint, withPage(q, next), &response); err != nil {
			return nil, fmt.Errorf("page %d: %w", next, err)
		}
		items = append(items, response.Items...)
		fetched++
	}

	return items, nil
}

// getJSON performs a GET with retries and decodes the body into target.
func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Accept", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	data, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(data, target)
}

func (c *Client) fetch(ctx context.Context, req *http.Request) ([]byte, error) {
	attempts := c.Attempts
	if attempts == 0 {
		attempts = 1
	}

	var lastErr error
	data, err := retry.DoWithData(
		func() ([]byte, error) {
			c.logger.Debug("make request", zap.String("url", req.URL.String()))

			resp, err := c.HTTPClient.Do(req)
			if err != nil {
				lastErr = err
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				lastErr = &HTTPError{StatusCode: resp.StatusCode, URL: req.URL.String()}
				return nil, lastErr
			}

			body, err := readBody(resp)
			lastErr = err
			return body, err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.RetryDelay),
		retry.MaxJitter(c.RetryDelay/2),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying request",
				zap.Uint("attempt", n+1),
				zap.String("url", req.URL.String()),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}

	return data, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
}

// isRetryableError reports transient failures: throttling, 5xx gateways and network errors.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}

// withPage returns a copy of q with the page parameter set.
func withPage(q url.Values, page int) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set("page", strconv.Itoa(page))
	return out
}
