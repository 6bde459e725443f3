package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/ratelimit"
)

type captureSink struct {
	comments []domain.Comment
	err      error
}

func (s *captureSink) Enqueue(_ context.Context, c domain.Comment) error {
	if s.err != nil {
		return s.err
	}

	s.comments = append(s.comments, c)

	return nil
}

func TestFeeder_FeedsUntilExhausted(t *testing.T) {
	logger := zerolog.Nop()
	guard := ratelimit.New(100, time.Minute, &logger)
	sink := &captureSink{}

	src := NewSliceSource([]domain.Comment{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	f := NewFeeder(src, guard, 0, sink, &logger)

	require.NoError(t, f.Run(context.Background()))

	require.Len(t, sink.comments, 3)
	assert.Equal(t, "a", sink.comments[0].ID)
	assert.Equal(t, "c", sink.comments[2].ID)
}

func TestFeeder_PropagatesSinkError(t *testing.T) {
	logger := zerolog.Nop()
	guard := ratelimit.New(100, time.Minute, &logger)

	wantErr := errors.New("queue gone")
	sink := &captureSink{err: wantErr}

	src := NewSliceSource([]domain.Comment{{ID: "a"}})
	f := NewFeeder(src, guard, 0, sink, &logger)

	err := f.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestFeeder_BlocksOnQuotaUntilWindowReset(t *testing.T) {
	logger := zerolog.Nop()

	// Quota of 2 in a short window: the third comment must wait for the
	// window to elapse before it is fed.
	guard := ratelimit.New(2, 60*time.Millisecond, &logger)
	sink := &captureSink{}

	src := NewSliceSource([]domain.Comment{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	f := NewFeeder(src, guard, 0, sink, &logger)

	start := time.Now()
	require.NoError(t, f.Run(context.Background()))

	assert.Len(t, sink.comments, 3)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFeeder_ContextCancelStopsRun(t *testing.T) {
	logger := zerolog.Nop()
	guard := ratelimit.New(1, time.Hour, &logger)
	sink := &captureSink{}

	src := NewSliceSource([]domain.Comment{{ID: "a"}, {ID: "b"}})
	f := NewFeeder(src, guard, 0, sink, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := f.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The first comment got through before the quota was exhausted.
	assert.Len(t, sink.comments, 1)
}
