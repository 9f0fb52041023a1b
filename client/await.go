package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var errStatusPending = errors.New("status pending")

// AwaitTenderStatus polls GetTender until the tender reaches one of statuses.
// Polls back off exponentially up to the configured maximum interval. Any
// fetch error aborts immediately; running out of the await budget (or ctx)
// yields ErrAwaitTimeout together with the last status seen.
// With no statuses it performs a single GetTender.
func (c *Client) AwaitTenderStatus(ctx context.Context, tenderID string, statuses ...string) (*Tender, error) {
	if len(statuses) == 0 {
		return c.GetTender(ctx, tenderID)
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.pollInterval),
		backoff.WithMaxInterval(c.pollMaxInterval),
		backoff.WithMaxElapsedTime(c.awaitTimeout),
		backoff.WithClockProvider(c.clock),
	)

	var (
		last  *Tender
		polls int
	)
	op := func() error {
		polls++
		t, err := c.GetTender(ctx, tenderID)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = t
		if slices.Contains(statuses, t.Status) {
			return nil
		}
		return errStatusPending
	}
	err := backoff.RetryNotifyWithTimer(op, backoff.WithContext(b, ctx), func(_ error, wait time.Duration) {
		log.Debug().
			Str("tender_id", tenderID).
			Str("status", last.Status).
			Strs("awaiting", statuses).
			Dur("next_poll", wait).
			Msg("tender status pending")
	}, &clockTimer{clock: c.clock})
	if err == nil {
		return last, nil
	}
	if last != nil && (errors.Is(err, errStatusPending) || ctx.Err() != nil) {
		return last, fmt.Errorf("tender %s: last status %q after %d polls: %w", tenderID, last.Status, polls, ErrAwaitTimeout)
	}
	return nil, err
}

// clockTimer is a backoff.Timer driven by the client's clock, so waits
// between polls and the await budget are measured on the same clock.
type clockTimer struct {
	clock clockwork.Clock
	timer clockwork.Timer
}

func (t *clockTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = t.clock.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *clockTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *clockTimer) C() <-chan time.Time { return t.timer.Chan() }
