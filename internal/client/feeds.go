package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client fetches the provider data drops: per-game player stats, rosters,
// snap counts, schedules, and historical line files. Payloads arrive as
// generic JSON rows; field names drift across release vintages, so parsing
// happens downstream through the field alias tables.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a new feed client with retry and rate limiting
func NewClient(baseURL string, timeout time.Duration) *Client {
	// Create rate limiter (max 20 concurrent requests, burst of 20)
	rateLimiter := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with retry logic and rate limiting
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying feed request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
			defer func() { c.rateLimiter <- struct{}{} }()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "nflgames-reconcile/1.0")

		if len(params) > 0 {
			q := req.URL.Query()
			for key, value := range params {
				q.Add(key, value)
			}
			req.URL.RawQuery = q.Encode()
		}

		log.Debug().
			Str("url", url).
			Int("attempt", attempt+1).
			Msg("Fetching feed")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("feed request failed: %w", err)
			// Retry on network errors
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			log.Debug().
				Str("url", url).
				Int("status", resp.StatusCode).
				Int("size", len(body)).
				Msg("Feed request successful")
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Retryable errors
			lastErr = fmt.Errorf("feed returned retryable status %d: %s", resp.StatusCode, string(body))
			if attempt < c.maxRetries {
				log.Warn().
					Str("url", url).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			return nil, lastErr

		case http.StatusNotFound:
			// Whole-season drops disappear when a vintage is repackaged
			return nil, fmt.Errorf("feed file not found: %s", url)

		default:
			// Other errors - don't retry
			return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}

// getRows fetches a path and decodes the generic row payload
func (c *Client) getRows(ctx context.Context, path string, params map[string]string) ([]map[string]interface{}, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows from %s: %w", path, err)
	}
	return rows, nil
}

// FetchPlayerStats fetches per-game player performance rows for one season
func (c *Client) FetchPlayerStats(ctx context.Context, season int) ([]map[string]interface{}, error) {
	rows, err := c.getRows(ctx, fmt.Sprintf("player_stats/player_stats_%d.json", season), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player stats for %d: %w", season, err)
	}
	return rows, nil
}

// FetchPlayerMetadata fetches the roster/biographical rows for one season
func (c *Client) FetchPlayerMetadata(ctx context.Context, season int) ([]map[string]interface{}, error) {
	rows, err := c.getRows(ctx, fmt.Sprintf("rosters/roster_%d.json", season), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player metadata for %d: %w", season, err)
	}
	return rows, nil
}

// FetchSnapCounts fetches participation rows for one season
func (c *Client) FetchSnapCounts(ctx context.Context, season int) ([]map[string]interface{}, error) {
	rows, err := c.getRows(ctx, fmt.Sprintf("snap_counts/snap_counts_%d.json", season), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snap counts for %d: %w", season, err)
	}
	return rows, nil
}

// FetchSchedule fetches schedule rows, which carry game dates and the
// home-signed betting lines for recent seasons
func (c *Client) FetchSchedule(ctx context.Context, season int) ([]map[string]interface{}, error) {
	rows, err := c.getRows(ctx, "schedules/games.json", map[string]string{"season": fmt.Sprintf("%d", season)})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %d: %w", season, err)
	}
	return rows, nil
}

// FetchHistoricalLines fetches the favorite-convention historical line rows
func (c *Client) FetchHistoricalLines(ctx context.Context) ([]map[string]interface{}, error) {
	rows, err := c.getRows(ctx, "lines/spreadspoke_scores.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical lines: %w", err)
	}
	return rows, nil
}
