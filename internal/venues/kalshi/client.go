package kalshi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mrosetti/btcarb/pkg/cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// seriesCacheKey is where discovered BTC series tickers live in the cache.
	seriesCacheKey = "kalshi-btc-series"
	seriesCacheTTL = 1 * time.Hour

	// Per-series page size. Kalshi caps /markets at 200 per request.
	marketsPageLimit = 200

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// seriesPattern extracts series tickers (KX-prefixed) from market/event links
// on the public BTC category page.
var seriesPattern = regexp.MustCompile(`/(?:markets|events)/(KX[A-Z0-9]+)`)

// Client fetches BTC markets from the Kalshi trade API. Series tickers are
// discovered by scraping the public category page, since the API has no
// category listing endpoint.
type Client struct {
	apiURL      string
	categoryURL string
	httpClient  *http.Client
	limiter     *rate.Limiter
	cache       cache.Cache
	logger      *zap.Logger
}

// Config holds Kalshi client configuration.
type Config struct {
	APIURL      string
	CategoryURL string
	Cache       cache.Cache
	Logger      *zap.Logger
}

// NewClient creates a new Kalshi client.
func NewClient(cfg *Config) *Client {
	return &Client{
		apiURL:      cfg.APIURL,
		categoryURL: cfg.CategoryURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Kalshi allows 10 reads/sec on the basic tier; stay under it.
		limiter: rate.NewLimiter(8, 4),
		cache:   cfg.Cache,
		logger:  cfg.Logger,
	}
}

// DiscoverSeriesTickers returns the BTC series tickers found on the category
// page. Results are cached so the page is not re-scraped every cycle.
func (c *Client) DiscoverSeriesTickers(ctx context.Context) ([]string, error) {
	if c.cache != nil {
		if value, found := c.cache.Get(seriesCacheKey); found {
			if tickers, ok := value.([]string); ok {
				return tickers, nil
			}
		}
	}

	body, err := c.get(ctx, c.categoryURL, true)
	if err != nil {
		FetchErrorsTotal.WithLabelValues("category_page").Inc()
		return nil, fmt.Errorf("fetch category page: %w", err)
	}

	matches := seriesPattern.FindAllStringSubmatch(string(body), -1)
	seen := make(map[string]struct{}, len(matches))
	tickers := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		tickers = append(tickers, m[1])
	}
	// Deterministic order keeps fetch logs and tests stable.
	sort.Strings(tickers)

	SeriesDiscovered.Set(float64(len(tickers)))
	c.logger.Info("kalshi-series-discovered",
		zap.Int("count", len(tickers)),
		zap.Strings("tickers", tickers))

	if c.cache != nil {
		c.cache.Set(seriesCacheKey, tickers, seriesCacheTTL)
	}

	return tickers, nil
}

// FetchBTCMarkets fetches all open markets for every discovered BTC series.
// A series that fails to fetch is logged and skipped; the cycle continues
// with whatever was retrieved.
func (c *Client) FetchBTCMarkets(ctx context.Context) ([]Market, error) {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	tickers, err := c.DiscoverSeriesTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover series tickers: %w", err)
	}

	var markets []Market
	for _, series := range tickers {
		seriesMarkets, err := c.fetchSeries(ctx, series)
		if err != nil {
			FetchErrorsTotal.WithLabelValues("series").Inc()
			c.logger.Warn("kalshi-series-fetch-failed",
				zap.String("series", series),
				zap.Error(err))
			continue
		}
		for i := range seriesMarkets {
			seriesMarkets[i].SeriesTicker = series
		}
		markets = append(markets, seriesMarkets...)
	}

	MarketsFetchedTotal.Add(float64(len(markets)))
	c.logger.Debug("kalshi-markets-fetched",
		zap.Int("series", len(tickers)),
		zap.Int("markets", len(markets)))

	return markets, nil
}

// fetchSeries fetches the open markets of one series. A 404 means the series
// has no market listing and yields an empty result, not an error.
func (c *Client) fetchSeries(ctx context.Context, series string) ([]Market, error) {
	params := url.Values{}
	params.Set("series_ticker", series)
	params.Set("status", "open")
	params.Set("limit", fmt.Sprintf("%d", marketsPageLimit))

	requestURL := fmt.Sprintf("%s/markets?%s", c.apiURL, params.Encode())

	body, err := c.get(ctx, requestURL, false)
	if err != nil {
		var httpErr *statusError
		if errors.As(err, &httpErr) && httpErr.code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	var resp marketsResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("unmarshal markets: %w", err)
	}

	return resp.Markets, nil
}

// statusError carries a non-2xx response code through the retry helper.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.code, e.body)
}

// get performs a rate-limited GET with retries on 429 and 5xx responses.
// browser selects a browser User-Agent, which the category page requires.
func (c *Client) get(ctx context.Context, requestURL string, browser bool) ([]byte, error) {
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
		if browser {
			req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
		} else {
			req.Header.Set("Accept", "application/json")
			req.Header.Set("User-Agent", "btcarb/1.0")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("do request: %w", err)
			c.sleep(ctx, attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &statusError{code: resp.StatusCode, body: string(body)}
			c.sleep(ctx, attempt)
			continue
		case resp.StatusCode >= 400:
			return nil, &statusError{code: resp.StatusCode, body: string(body)}
		case readErr != nil:
			return nil, fmt.Errorf("read response body: %w", readErr)
		}

		return body, nil
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
