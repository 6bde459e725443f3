package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
	"github.com/threadsight/comment-enricher/internal/ratelimit"
)

// Enqueuer is the pipeline-facing half of the feeder.
type Enqueuer interface {
	Enqueue(ctx context.Context, c domain.Comment) error
}

// Feeder pulls comments from a source and emits them into the pipeline.
// Every emission charges the sliding-window API quota guard; a smoothing
// limiter additionally paces requests inside the window so the quota is not
// burned in one burst.
type Feeder struct {
	source  Source
	guard   *ratelimit.Guard
	limiter *rate.Limiter
	sink    Enqueuer
	logger  *zerolog.Logger
}

func NewFeeder(source Source, guard *ratelimit.Guard, rps float64, sink Enqueuer, logger *zerolog.Logger) *Feeder {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Feeder{
		source:  source,
		guard:   guard,
		limiter: limiter,
		sink:    sink,
		logger:  logger,
	}
}

// Run feeds until the source is exhausted or ctx is canceled. It returns
// nil on normal exhaustion.
func (f *Feeder) Run(ctx context.Context) error {
	fed := 0

	for {
		if err := f.throttle(ctx); err != nil {
			return err
		}

		c, err := f.source.Next(ctx)
		if errors.Is(err, apperrors.ErrSourceExhausted) {
			f.logger.Info().Int("comments", fed).Msg("comment source exhausted")

			return nil
		}

		if err != nil {
			return fmt.Errorf("next comment: %w", err)
		}

		if err := f.sink.Enqueue(ctx, c); err != nil {
			return fmt.Errorf("enqueue comment: %w", err)
		}

		fed++
	}
}

func (f *Feeder) throttle(ctx context.Context) error {
	if err := f.guard.Acquire(ctx, 1); err != nil {
		return err
	}

	if f.limiter == nil {
		return nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("producer pacing: %w", err)
	}

	return nil
}
