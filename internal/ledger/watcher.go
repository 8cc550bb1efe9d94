package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// SpikeWatcher subscribes to the ledger's price-spike event feed over a
// websocket and forwards decoded events on a channel. Disconnects reconnect
// with exponential backoff until the context is cancelled.
type SpikeWatcher struct {
	url    string
	logger zerolog.Logger
}

// NewSpikeWatcher creates a watcher for the given websocket endpoint.
func NewSpikeWatcher(url string) *SpikeWatcher {
	return &SpikeWatcher{
		url:    url,
		logger: log.With().Str("component", "spike_watcher").Logger(),
	}
}

// Watch streams spike events until the context is cancelled. The returned
// channel is closed on shutdown.
func (w *SpikeWatcher) Watch(ctx context.Context) <-chan models.SpikeEvent {
	events := make(chan models.SpikeEvent, 16)

	go func() {
		defer close(events)
		for {
			if ctx.Err() != nil {
				return
			}
			if err := w.streamOnce(ctx, events); err != nil && ctx.Err() == nil {
				w.logger.Warn().Err(err).Msg("Event stream dropped, reconnecting")
			}
		}
	}()

	return events
}

// streamOnce dials the feed (with backoff) and pumps events until the
// connection breaks or the context ends.
func (w *SpikeWatcher) streamOnce(ctx context.Context, events chan<- models.SpikeEvent) error {
	var conn *websocket.Conn

	dial := func() error {
		var err error
		conn, _, err = websocket.DefaultDialer.DialContext(ctx, w.url, nil)
		if err != nil {
			return fmt.Errorf("dialing %s: %w", w.url, err)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 0 // keep trying until the context ends
	backoffStrategy.MaxInterval = 30 * time.Second

	if err := backoff.Retry(dial, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return err
	}
	defer conn.Close()

	w.logger.Info().Str("url", w.url).Msg("Connected to spike event feed")

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}

		var event models.SpikeEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			w.logger.Warn().Err(err).Str("payload", string(raw)).Msg("Dropping undecodable event")
			continue
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return nil
		}
	}
}
