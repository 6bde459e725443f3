// Package sentiment calls the external sentiment-scoring service. Batches
// are sent in fixed-size chunks with per-request timeouts and exponential
// backoff; a chunk whose retry budget is exhausted is skipped, never fatal
// to the batch.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

const (
	defaultChunkSize  = 1000
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultTimeout    = 10 * time.Second

	logKeyChunk   = "chunk"
	logKeyAttempt = "attempt"
)

type Config struct {
	URL        string
	ChunkSize  int
	MaxRetries int
	BaseDelay  time.Duration
	Timeout    time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zerolog.Logger
}

func New(cfg Config, logger *zerolog.Logger) *Client {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type scoreRequest struct {
	Comments []domain.Comment `json:"comments"`
}

type scoreResponse struct {
	Results           []domain.SentimentResult `json:"results"`
	TotalTimeSec      float64                  `json:"total_time_sec"`
	MemoryInitialMB   float64                  `json:"memory_initial_mb"`
	MemoryPeakMB      float64                  `json:"memory_peak_mb"`
	TotalDataSizeKB   float64                  `json:"total_data_size_kb"`
	TotalReturnSizeKB float64                  `json:"total_return_size_kb"`
}

// ScoreBatch scores the whole batch chunk by chunk. The returned results
// are a subset of the batch ids: comments in chunks that failed past the
// retry budget are simply missing. Only a canceled context aborts early.
func (c *Client) ScoreBatch(ctx context.Context, comments []domain.Comment) []domain.SentimentResult {
	all := make([]domain.SentimentResult, 0, len(comments))

	var (
		peakMemoryMB float64
		totalInputKB float64
	)

	for i := 0; i < len(comments); i += c.cfg.ChunkSize {
		if ctx.Err() != nil {
			break
		}

		chunkIdx := i/c.cfg.ChunkSize + 1
		chunk := comments[i:min(i+c.cfg.ChunkSize, len(comments))]

		resp, err := c.scoreChunk(ctx, chunk, chunkIdx)
		if err != nil {
			observability.SentimentChunksDropped.Inc()

			c.logger.Warn().Err(err).
				Int(logKeyChunk, chunkIdx).
				Int("size", len(chunk)).
				Msg("skipping sentiment chunk after exhausting retries")

			continue
		}

		all = append(all, resp.Results...)

		peakMemoryMB = max(peakMemoryMB, resp.MemoryPeakMB)
		totalInputKB += resp.TotalDataSizeKB
	}

	c.logger.Debug().
		Int("scored", len(all)).
		Int("submitted", len(comments)).
		Float64("service_peak_memory_mb", peakMemoryMB).
		Float64("payload_kb", totalInputKB).
		Msg("sentiment batch finished")

	return all
}

func (c *Client) scoreChunk(ctx context.Context, chunk []domain.Comment, chunkIdx int) (*scoreResponse, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.BaseDelay
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	attempt := 0

	var resp *scoreResponse

	operation := func() error {
		attempt++

		start := time.Now()

		r, err := c.post(ctx, chunk)

		observability.SentimentRequestDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			observability.SentimentRequests.WithLabelValues("error").Inc()

			c.logger.Debug().Err(err).
				Int(logKeyChunk, chunkIdx).
				Int(logKeyAttempt, attempt).
				Msg("sentiment request failed")

			return err
		}

		observability.SentimentRequests.WithLabelValues("success").Inc()

		resp = r

		return nil
	}

	retries := uint64(c.cfg.MaxRetries - 1)

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) post(ctx context.Context, chunk []domain.Comment) (*scoreResponse, error) {
	payload, err := json.Marshal(scoreRequest{Comments: chunk})
	if err != nil {
		return nil, fmt.Errorf("marshal sentiment request: %w", err)
	}

	// The per-request timeout is enforced here, separate from the retry
	// policy: a timed-out request is retried like any transport error.
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sentiment request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sentiment request: %w", err)
	}
	defer httpResp.Body.Close() //nolint:errcheck // read-only body close

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, httpResp.Body)

		return nil, fmt.Errorf("%w: %d", apperrors.ErrUnexpectedStatus, httpResp.StatusCode)
	}

	var resp scoreResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode sentiment response: %w", err)
	}

	// An empty result list is a valid response: the scored ids are a
	// subset of the chunk, and the subset may be empty.
	return &resp, nil
}
