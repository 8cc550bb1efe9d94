// Package inference wraps the external text-completion service. The service
// is opaque to the core: it receives a prompt and returns text that the
// decision parser deals with.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ClientOptions configures the inference client.
type ClientOptions struct {
	URL            string
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// Client is a rate-limited, retrying HTTP client for a chat-completion
// style inference API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	opts       ClientOptions
	logger     zerolog.Logger
}

// NewClient creates a new inference client with rate limiting.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		opts:       opts,
		logger:     log.With().Str("component", "inference_client").Logger(),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a prompt and returns the raw completion text. Transient
// failures retry with exponential backoff; the caller's context bounds the
// whole attempt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.opts.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	c.logger.Debug().Int("prompt_len", len(prompt)).Msg("Sending prompt to inference service")

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
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
		return "", fmt.Errorf("after retries: %w", err)
	}

	var data chatResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing inference response")
		return "", fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Choices) == 0 {
		c.logger.Warn().Msg("Inference service returned empty choices")
		return "", nil
	}

	return data.Choices[0].Message.Content, nil
}
