package polymarket

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// cryptoTagID is the Gamma API tag covering crypto events; combined
	// with related_tags it includes the Bitcoin-specific tags.
	cryptoTagID = "21"

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client fetches crypto events from the Polymarket Gamma API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new Gamma API client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Gamma allows 300 requests per 10s window; 18/s keeps 60% headroom.
		limiter: rate.NewLimiter(18, 10),
		logger:  logger,
	}
}

// FetchCryptoEvents fetches active crypto events ordered by 24h volume.
// The caller filters for the target asset; this returns the whole crypto tag.
func (c *Client) FetchCryptoEvents(ctx context.Context, limit int) ([]Event, error) {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Set("tag_id", cryptoTagID)
	params.Set("related_tags", "true")
	params.Set("active", "true")
	params.Set("closed", "false")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order", "volume24hr")
	params.Set("ascending", "false")

	requestURL := fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, requestURL)
	if err != nil {
		FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	// Gamma returns a direct array, not an envelope.
	var events []Event
	err = json.Unmarshal(body, &events)
	if err != nil {
		FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}

	EventsFetchedTotal.Add(float64(len(events)))
	c.logger.Debug("polymarket-events-fetched",
		zap.Int("count", len(events)))

	return events, nil
}

// get performs a rate-limited GET with retries on 429 and 5xx responses.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "btcarb/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("do request: %w", err)
			c.sleep(ctx, attempt)
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(data))
			c.sleep(ctx, attempt)
			continue
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(data))
		case readErr != nil:
			return nil, fmt.Errorf("read response body: %w", readErr)
		}

		return data, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// sleep waits with exponential backoff, respecting the context.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
