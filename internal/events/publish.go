package events

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// PublishWithRetry attempts to publish an event up to maxRetries times with
// exponential backoff (50ms, 100ms, 200ms, ...). A nil publisher is a no-op.
// Returns the error from the final attempt if all retries fail.
func PublishWithRetry(ctx context.Context, p Publisher, event Event, maxRetries int) error {
	if p == nil {
		return nil
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := p.Publish(ctx, event)
		if err == nil {
			return nil
		}
		lastErr = err

		// closed bus and cancelled context are permanent
		if errors.Is(err, ErrBusClosed) || ctx.Err() != nil {
			break
		}

		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			log.Debug().
				Int("attempt", attempt+1).
				Dur("retry_delay", delay).
				Err(err).
				Msg("event publish failed, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	log.Warn().
		Str("event_type", string(event.Type)).
		Str("task_id", event.TaskID).
		Err(lastErr).
		Msg("event publish failed")

	return lastErr
}
