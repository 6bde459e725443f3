package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

const logKeyAttribute = "attribute"

// AttributeResult is one extractor's outcome over a batch. A non-nil Err
// means the whole batch has no value for this attribute; the other
// extractors are unaffected.
type AttributeResult struct {
	Attribute domain.Attribute
	Results   []Result
	Err       error
	Elapsed   time.Duration
}

// FanOut runs every extractor concurrently over one batch against shared
// precomputed annotations. Total concurrency is capped; a slow extractor
// delays only its own batch flush.
type FanOut struct {
	extractors    []Extractor
	maxConcurrent int
	maxChars      int
	logger        *zerolog.Logger
}

func NewFanOut(extractors []Extractor, maxConcurrent, maxChars int, logger *zerolog.Logger) *FanOut {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	return &FanOut{
		extractors:    extractors,
		maxConcurrent: maxConcurrent,
		maxChars:      maxChars,
		logger:        logger,
	}
}

// Run extracts every attribute for the batch. The returned slice has one
// entry per extractor, in registration order, each either a full id-aligned
// result list or a typed error.
func (f *FanOut) Run(ctx context.Context, batch []domain.Comment) []AttributeResult {
	start := time.Now()
	anns := Annotate(batch, f.maxChars)

	out := make([]AttributeResult, len(f.extractors))
	sem := make(chan struct{}, f.maxConcurrent)

	var wg sync.WaitGroup

	for i, ex := range f.extractors {
		wg.Add(1)

		go func(i int, ex Extractor) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			out[i] = f.runOne(ctx, ex, anns)
		}(i, ex)
	}

	wg.Wait()

	f.logSummary(batch, out, time.Since(start))

	return out
}

func (f *FanOut) runOne(ctx context.Context, ex Extractor, anns []Annotated) AttributeResult {
	res := AttributeResult{Attribute: ex.Attribute()}
	start := time.Now()

	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("extractor %s panicked: %v", ex.Attribute(), r)
				res.Results = nil
			}
		}()

		res.Results, res.Err = ex.Extract(ctx, anns)
	}()

	res.Elapsed = time.Since(start)

	if res.Err == nil && len(res.Results) != len(anns) {
		res.Err = fmt.Errorf("extractor %s returned %d results for %d comments", ex.Attribute(), len(res.Results), len(anns))
		res.Results = nil
	}

	observability.ExtractorDuration.WithLabelValues(string(res.Attribute)).Observe(res.Elapsed.Seconds())

	if res.Err != nil {
		observability.ExtractorFailures.WithLabelValues(string(res.Attribute)).Inc()

		f.logger.Warn().Err(res.Err).Str(logKeyAttribute, string(res.Attribute)).Msg("extractor failed for batch")
	}

	return res
}

func (f *FanOut) logSummary(batch []domain.Comment, results []AttributeResult, total time.Duration) {
	ev := f.logger.Debug().Int("batch_size", len(batch)).Dur("total", total)

	for _, res := range results {
		if res.Err != nil {
			ev = ev.Str(string(res.Attribute), "failed")
			continue
		}

		ev = ev.Dur(string(res.Attribute), res.Elapsed)
	}

	ev.Msg("extractor fan-out finished")
}
