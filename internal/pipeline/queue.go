// Package pipeline implements the concurrent comment-enrichment pipeline: a
// bounded ingestion queue feeding a fixed pool of workers, each batching
// comments, fanning extraction out in parallel with the sentiment call, and
// merging results into the shared record store.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

const defaultQueueCapacity = 1024

// Item is one ingestion queue entry: either a comment or an explicit
// shutdown signal. The tagged variant avoids ambiguity with empty payloads.
type Item struct {
	Comment  domain.Comment
	Shutdown bool
}

// Queue is the bounded multi-producer/multi-consumer FIFO feeding the
// workers. FIFO holds per producer; consumers impose no global order.
type Queue struct {
	ch chan Item
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}

	return &Queue{ch: make(chan Item, capacity)}
}

// Enqueue adds a comment, blocking at most until ctx is done when the queue
// is full.
func (q *Queue) Enqueue(ctx context.Context, c domain.Comment) error {
	select {
	case q.ch <- Item{Comment: c}:
		observability.CommentsIngested.Inc()
		observability.QueueDepth.Set(float64(len(q.ch)))

		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", apperrors.ErrEnqueueTimeout, ctx.Err())
	}
}

// EnqueueShutdown adds one shutdown signal. Exactly one must be delivered
// per worker; each worker consumes one, flushes its partial batch and exits.
func (q *Queue) EnqueueShutdown(ctx context.Context) error {
	select {
	case q.ch <- Item{Shutdown: true}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", apperrors.ErrEnqueueTimeout, ctx.Err())
	}
}

// Dequeue returns the next item, or ok=false once timeout elapses with the
// queue empty.
func (q *Queue) Dequeue(timeout time.Duration) (Item, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case item := <-q.ch:
		observability.QueueDepth.Set(float64(len(q.ch)))

		return item, true
	case <-timer.C:
		return Item{}, false
	}
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	return len(q.ch)
}
