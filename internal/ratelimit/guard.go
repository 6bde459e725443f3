// Package ratelimit bounds calls to an external API to a fixed quota per
// sliding window. Callers serialize through a single guard; when the quota
// is exhausted the acquiring caller blocks until the window resets.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

type Guard struct {
	limit  int
	window time.Duration
	logger *zerolog.Logger

	// Guard state is protected by the acquire channel acting as a mutex:
	// callers serialize through it, including across the blocking wait, so
	// a waiter keeps later callers queued behind it.
	sem         chan struct{}
	count       int
	windowStart time.Time
}

func New(limit int, window time.Duration, logger *zerolog.Logger) *Guard {
	g := &Guard{
		limit:       limit,
		window:      window,
		logger:      logger,
		sem:         make(chan struct{}, 1),
		windowStart: time.Now(),
	}
	g.sem <- struct{}{}

	return g
}

// Acquire reserves n calls against the quota. It returns immediately while
// the current window has headroom; otherwise it blocks until the window's
// remaining time elapses, resets the counter and proceeds. The only error
// is a canceled context.
func (g *Guard) Acquire(ctx context.Context, n int) error {
	select {
	case <-g.sem:
	case <-ctx.Done():
		return fmt.Errorf("rate limit acquire: %w", ctx.Err())
	}
	defer func() { g.sem <- struct{}{} }()

	now := time.Now()

	elapsed := now.Sub(g.windowStart)
	if elapsed >= g.window {
		g.windowStart = now
		g.count = 0
		elapsed = 0
	}

	if g.count+n > g.limit {
		wait := g.window - elapsed

		g.logger.Info().
			Dur("wait", wait).
			Int("limit", g.limit).
			Msg("api quota reached, sleeping until window reset")

		observability.RateLimitWaits.Inc()

		start := time.Now()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("rate limit wait: %w", ctx.Err())
		}

		observability.RateLimitWaitDuration.Observe(time.Since(start).Seconds())

		g.windowStart = time.Now()
		g.count = 0
	}

	g.count += n

	return nil
}
