package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/extract"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

// flush trigger reasons for metrics and logs.
const (
	flushReasonFull     = "full"
	flushReasonTimeout  = "timeout"
	flushReasonShutdown = "shutdown"
)

// SentimentScorer scores one batch. Implementations swallow chunk-level
// failures and return the subset of ids they managed to score.
type SentimentScorer interface {
	ScoreBatch(ctx context.Context, comments []domain.Comment) []domain.SentimentResult
}

// noopScorer is used when the sentiment coprocessor is disabled.
type noopScorer struct{}

func (noopScorer) ScoreBatch(context.Context, []domain.Comment) []domain.SentimentResult {
	return nil
}

type worker struct {
	id          int
	queue       *Queue
	acc         *accumulator
	fanout      *extract.FanOut
	scorer      SentimentScorer
	merger      *Merger
	pollTimeout time.Duration
	logger      zerolog.Logger

	// in-flight flushes; the worker keeps polling while a flush runs
	flushes sync.WaitGroup
}

// run is the worker loop: poll the queue with a short timeout so age checks
// stay responsive, flush on size or age, and on a shutdown signal flush the
// leftover batch and exit. Flushes execute asynchronously; the loop returns
// to polling immediately.
func (w *worker) run(ctx context.Context) {
	w.logger.Debug().Msg("worker starting")

	defer w.flushes.Wait()

	for {
		if w.acc.expired(time.Now()) {
			w.flush(ctx, w.acc.take(), flushReasonTimeout)
		}

		item, ok := w.queue.Dequeue(w.pollTimeout)
		if !ok {
			continue
		}

		if item.Shutdown {
			w.logger.Debug().Msg("worker received shutdown signal")

			if w.acc.len() > 0 {
				w.flush(ctx, w.acc.take(), flushReasonShutdown)
			}

			return
		}

		w.acc.add(item.Comment)

		if w.acc.full() {
			w.flush(ctx, w.acc.take(), flushReasonFull)
		}
	}
}

func (w *worker) flush(ctx context.Context, batch []domain.Comment, reason string) {
	if len(batch) == 0 {
		return
	}

	w.logger.Debug().Int("size", len(batch)).Str("reason", reason).Msg("flushing batch")

	observability.BatchesFlushed.WithLabelValues(reason).Inc()
	observability.BatchSize.Observe(float64(len(batch)))

	w.flushes.Add(1)

	// An accepted batch flushes to completion even after the signal context
	// is canceled: drain relies on the shutdown flush still reaching the
	// sentiment service, whose own per-request timeouts bound the work.
	flushCtx := context.WithoutCancel(ctx)

	go func() {
		defer w.flushes.Done()

		start := time.Now()

		// The network-bound sentiment call runs on its own goroutine so it
		// does not serialize behind the CPU-bound extractors; both join
		// before the merge.
		var sentiments []domain.SentimentResult

		var wg sync.WaitGroup

		wg.Add(1)

		go func() {
			defer wg.Done()

			sentiments = w.scorer.ScoreBatch(flushCtx, batch)
		}()

		attrs := w.fanout.Run(flushCtx, batch)

		wg.Wait()

		w.merger.Merge(batch, attrs, sentiments)

		observability.BatchFlushDuration.Observe(time.Since(start).Seconds())

		w.logger.Debug().
			Int("size", len(batch)).
			Dur("elapsed", time.Since(start)).
			Msg("batch flushed")
	}()
}
