package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"github.com/g-rebels/kr-holiday/pkg/random"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
	defaultRows    = 100
	backoffBase    = time.Second
	jitterPercent  = 20
)

// ErrNoServiceKey is returned when the client has no API key configured.
var ErrNoServiceKey = errors.New("service key is not configured")

// ClientConfig configures a Client. Zero values take defaults.
type ClientConfig struct {
	APIURL     string
	ServiceKey string
	Rows       int
	Timeout    time.Duration
	Retries    int
	Backoff    time.Duration
}

// Client fetches special days from the public data portal.
type Client struct {
	apiURL     string
	serviceKey string
	rows       int
	retries    int
	backoff    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new data.go.kr API client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Rows <= 0 {
		cfg.Rows = defaultRows
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = backoffBase
	}

	return &Client{
		apiURL:     cfg.APIURL,
		serviceKey: cfg.ServiceKey,
		rows:       cfg.Rows,
		retries:    cfg.Retries,
		backoff:    cfg.Backoff,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// APIURL returns the endpoint the client queries.
func (c *Client) APIURL() string {
	return c.apiURL
}

// FetchYear returns the special days of year. Items that cannot be parsed
// are skipped with a warning.
func (c *Client) FetchYear(ctx context.Context, year int) ([]dataset.HolidayEntry, error) {
	if c.serviceKey == "" {
		return nil, ErrNoServiceKey
	}

	var resp apiResponse
	if err := c.doRequest(ctx, year, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %d: %w", year, err)
	}

	if code := resp.Response.Header.ResultCode; code != "" && code != resultOK {
		return nil, fmt.Errorf("API error %s: %s", code, resp.Response.Header.ResultMsg)
	}
	if resp.Response.Body == nil {
		return nil, fmt.Errorf("API response has no body")
	}

	items, err := parseItems(resp.Response.Body.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		c.logger.Warn("No special days returned", zap.Int("year", year))
		return []dataset.HolidayEntry{}, nil
	}

	entries := make([]dataset.HolidayEntry, 0, len(items))
	for _, item := range items {
		date, err := dateutil.ParseDate(item.Locdate.String())
		if err != nil || item.DateName == "" {
			c.logger.Warn("Skipping unparseable item",
				zap.Int("year", year),
				zap.String("locdate", item.Locdate.String()),
				zap.String("name", item.DateName),
				zap.Error(err))
			continue
		}
		entries = append(entries, dataset.HolidayEntry{
			Date:      date,
			Name:      item.DateName,
			IsHoliday: item.IsHoliday == "Y",
		})
	}

	c.logger.Info("Special days received",
		zap.Int("year", year),
		zap.Int("count", len(entries)))

	return entries, nil
}

// doRequest performs the request with retries
func (c *Client) doRequest(ctx context.Context, year int, result interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		err := c.doRequestOnce(ctx, year, result)
		if err == nil {
			return nil
		}

		lastErr = err
		c.logger.Warn("Request failed, retrying",
			zap.Int("year", year),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.retries),
			zap.Error(err))

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(random.Backoff(attempt, c.backoff, jitterPercent)):
			}
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.retries, lastErr)
}

// doRequestOnce performs a single HTTP request
func (c *Client) doRequestOnce(ctx context.Context, year int, result interface{}) error {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	q := u.Query()
	q.Set("ServiceKey", c.serviceKey)
	q.Set("solYear", strconv.Itoa(year))
	q.Set("numOfRows", strconv.Itoa(c.rows))
	q.Set("_type", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
