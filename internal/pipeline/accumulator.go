package pipeline

import (
	"time"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// accumulator buffers comments for one worker until a size or age threshold
// is met. It moves EMPTY -> FILLING on the first item and back to EMPTY
// when the batch is taken; the snapshot hand-off means a flush in flight
// never shares the live buffer.
type accumulator struct {
	maxSize   int
	maxWait   time.Duration
	items     []domain.Comment
	createdAt time.Time
}

func newAccumulator(maxSize int, maxWait time.Duration) *accumulator {
	return &accumulator{
		maxSize: maxSize,
		maxWait: maxWait,
		items:   make([]domain.Comment, 0, maxSize),
	}
}

func (a *accumulator) add(c domain.Comment) {
	if len(a.items) == 0 {
		a.createdAt = time.Now()
	}

	a.items = append(a.items, c)
}

func (a *accumulator) len() int {
	return len(a.items)
}

func (a *accumulator) full() bool {
	return len(a.items) >= a.maxSize
}

// expired reports whether the oldest buffered item has waited past maxWait.
func (a *accumulator) expired(now time.Time) bool {
	return len(a.items) > 0 && now.Sub(a.createdAt) >= a.maxWait
}

// take returns a snapshot of the buffer and resets the accumulator to EMPTY.
func (a *accumulator) take() []domain.Comment {
	if len(a.items) == 0 {
		return nil
	}

	batch := make([]domain.Comment, len(a.items))
	copy(batch, a.items)

	a.items = a.items[:0]
	a.createdAt = time.Time{}

	return batch
}
