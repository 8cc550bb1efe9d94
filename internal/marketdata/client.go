// Package marketdata fetches read-only market snapshots from the data
// collaborator service.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// ClientOptions configures the market data client.
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// Client fetches MarketDataState snapshots over HTTP with rate limiting and
// retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	opts       ClientOptions
	logger     zerolog.Logger
}

// NewClient creates a new market data client.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 5
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		opts:       opts,
		logger:     log.With().Str("component", "marketdata_client").Logger(),
	}
}

// Snapshot fetches the current market data state for a symbol. Candles are
// returned chronologically ascending and the derived fields are filled in
// when the service leaves them empty.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*models.MarketDataState, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/snapshot?symbol=%s", c.opts.BaseURL, url.QueryEscape(symbol))
	c.logger.Debug().Str("url", endpoint).Msg("Fetching market snapshot")

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}

	var state models.MarketDataState
	if err := json.Unmarshal(body, &state); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing snapshot JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	Normalize(&state)

	c.logger.Debug().Int("candles", len(state.Candles)).Msg("Fetched market snapshot")
	return &state, nil
}

// Normalize sorts candles ascending and fills the derived fields the
// analyzer expects when the feed leaves them empty.
func Normalize(state *models.MarketDataState) {
	sort.Slice(state.Candles, func(i, j int) bool {
		return state.Candles[i].Timestamp.Before(state.Candles[j].Timestamp)
	})

	if state.CurrentPrice == 0 {
		if last, ok := state.LastCandle(); ok {
			state.CurrentPrice = last.Close
		}
	}
	if state.AverageVolume == 0 {
		state.AverageVolume = indicators.AverageVolume(state.Candles)
	}
	if len(state.Prices) == 0 {
		state.Prices = make([]float64, len(state.Candles))
		state.Volumes = make([]float64, len(state.Candles))
		for i, c := range state.Candles {
			state.Prices[i] = c.Close
			state.Volumes[i] = c.Volume
		}
	}
}
