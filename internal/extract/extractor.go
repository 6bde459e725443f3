// Package extract implements the attribute extractors and the concurrent
// fan-out that runs them over one batch of comments. Extractors are pure
// with respect to their batch: the only state they read is the fixed rule
// tables configured at startup.
package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

const (
	defaultMaxConcurrent = 9
	defaultSubWorkers    = 5
)

// Value is one extracted attribute value. Apply assigns it onto the record
// as a single whole-field write; it is never called more than once per
// (record, attribute) pair.
type Value interface {
	Apply(rec *domain.EnrichedRecord)
}

// Result pairs the extracted value with the id of the comment it was
// computed from. A nil Value means the extractor produced nothing for this
// comment; the attribute field stays unset.
type Result struct {
	ID    string
	Value Value
}

// Extractor computes one attribute for every comment in a batch. The output
// must be the same length and id order as the input; the merger rejects
// anything else.
type Extractor interface {
	Attribute() domain.Attribute
	Extract(ctx context.Context, batch []Annotated) ([]Result, error)
}

// DefaultExtractors builds the full extractor set over the given rules.
// subWorkers caps the per-extractor internal parallelism.
func DefaultExtractors(rules *RuleSet, scorer EmotionScorer, subWorkers int) []Extractor {
	if subWorkers <= 0 {
		subWorkers = defaultSubWorkers
	}

	return []Extractor{
		NewEmotionExtractor(scorer, subWorkers),
		NewDesireExtractor(rules.Desire, subWorkers),
		NewFailedSolutionExtractor(rules.FailedSolution, subWorkers),
		NewMetaphorExtractor(rules.Metaphors),
		NewPainpointExtractor(rules.Painpoints, subWorkers),
		NewPractitionerExtractor(rules.Practitioner, subWorkers),
		NewQuestionExtractor(rules.Question, subWorkers),
		NewTopicExtractor(subWorkers),
		NewTriggerPhraseExtractor(rules.Trigger, subWorkers),
	}
}

// mapBatch splits the batch across up to subWorkers goroutines, applies fn
// per comment and reassembles the results in input order with input ids. A
// panic in fn is recovered on the sub-worker goroutine and surfaced as the
// batch error, so a broken rule or scorer fails only its own attribute.
func mapBatch(batch []Annotated, subWorkers int, fn func(Annotated) Value) ([]Result, error) {
	out := make([]Result, len(batch))

	var (
		mu       sync.Mutex
		panicErr error
	)

	apply := func(i int) {
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				if panicErr == nil {
					panicErr = fmt.Errorf("panicked on comment %s: %v", batch[i].Comment.ID, r)
				}
				mu.Unlock()
			}
		}()

		out[i] = Result{ID: batch[i].Comment.ID, Value: fn(batch[i])}
	}

	if subWorkers <= 1 || len(batch) <= 1 {
		for i := range batch {
			apply(i)
		}

		if panicErr != nil {
			return nil, panicErr
		}

		return out, nil
	}

	chunk := (len(batch) + subWorkers - 1) / subWorkers

	var wg sync.WaitGroup

	for start := 0; start < len(batch); start += chunk {
		end := min(start+chunk, len(batch))

		wg.Add(1)

		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				apply(i)
			}
		}(start, end)
	}

	wg.Wait()

	if panicErr != nil {
		return nil, panicErr
	}

	return out, nil
}
