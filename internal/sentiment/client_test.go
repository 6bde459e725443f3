package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

func scoreHandler(t *testing.T, reject func(chunk []domain.Comment, attempt int64) bool) (http.HandlerFunc, *int64) {
	t.Helper()

	var attempts int64

	handler := func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&attempts, 1)

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if reject != nil && reject(req.Comments, n) {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		resp := scoreResponse{MemoryPeakMB: 128, TotalDataSizeKB: 1}
		for _, c := range req.Comments {
			resp.Results = append(resp.Results, domain.SentimentResult{
				ID:        c.ID,
				Sentiment: "positive",
				Score:     0.8,
			})
		}

		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}

	return handler, &attempts
}

func newTestClient(url string, cfg Config) *Client {
	logger := zerolog.Nop()
	cfg.URL = url

	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = time.Millisecond
	}

	return New(cfg, &logger)
}

func batch(ids ...string) []domain.Comment {
	out := make([]domain.Comment, len(ids))
	for i, id := range ids {
		out[i] = domain.Comment{ID: id, Body: "text " + id}
	}

	return out
}

func TestClient_ScoresBatchInChunks(t *testing.T) {
	handler, attempts := scoreHandler(t, nil)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := newTestClient(srv.URL, Config{ChunkSize: 2, MaxRetries: 3})

	results := c.ScoreBatch(context.Background(), batch("a", "b", "c", "d", "e"))

	assert.EqualValues(t, 3, atomic.LoadInt64(attempts))
	require.Len(t, results, 5)

	seen := make(map[string]int)
	for _, r := range results {
		seen[r.ID]++
		assert.Equal(t, "positive", r.Sentiment)
		assert.InDelta(t, 0.8, r.Score, 1e-9)
	}

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, 1, seen[id], "id %s scored exactly once", id)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	handler, attempts := scoreHandler(t, func(_ []domain.Comment, attempt int64) bool {
		return attempt <= 2
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := newTestClient(srv.URL, Config{ChunkSize: 10, MaxRetries: 3})

	results := c.ScoreBatch(context.Background(), batch("a", "b"))

	assert.EqualValues(t, 3, atomic.LoadInt64(attempts))
	require.Len(t, results, 2)
}

func TestClient_DropsChunkAfterRetryBudget(t *testing.T) {
	// Requests for the poisoned comment always fail; other chunks are
	// unaffected and still score.
	handler, attempts := scoreHandler(t, func(chunk []domain.Comment, _ int64) bool {
		for _, c := range chunk {
			if c.ID == "bad" {
				return true
			}
		}

		return false
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := newTestClient(srv.URL, Config{ChunkSize: 1, MaxRetries: 2})

	results := c.ScoreBatch(context.Background(), batch("a", "bad", "c"))

	// One request per healthy chunk plus the full retry budget for the bad one.
	assert.EqualValues(t, 4, atomic.LoadInt64(attempts))

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "c", results[1].ID)
}

func TestClient_EmptyResultListIsNotRetried(t *testing.T) {
	var attempts int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&attempts, 1)

		require.NoError(t, json.NewEncoder(w).Encode(scoreResponse{}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, Config{ChunkSize: 10, MaxRetries: 3})

	results := c.ScoreBatch(context.Background(), batch("a", "b"))

	// One request, no retries, no dropped chunk: the service scored an
	// empty subset and that is a successful response.
	assert.EqualValues(t, 1, atomic.LoadInt64(&attempts))
	assert.Empty(t, results)
}

func TestClient_CanceledContextAborts(t *testing.T) {
	handler, _ := scoreHandler(t, nil)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := newTestClient(srv.URL, Config{ChunkSize: 1, MaxRetries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := c.ScoreBatch(ctx, batch("a", "b"))
	assert.Empty(t, results)
}
