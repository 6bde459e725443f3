package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

type failedSolutionValue string

func (v failedSolutionValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.FailedSolution = &s
}

// FailedSolutionExtractor returns the first sentence describing a remedy
// that was tried and did not work.
type FailedSolutionExtractor struct {
	rule       Rule
	subWorkers int
}

func NewFailedSolutionExtractor(rule Rule, subWorkers int) *FailedSolutionExtractor {
	return &FailedSolutionExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *FailedSolutionExtractor) Attribute() domain.Attribute {
	return domain.AttributeFailedSol
}

func (e *FailedSolutionExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			if e.rule.Matches(sent) {
				return failedSolutionValue(strings.TrimSpace(sent))
			}
		}

		return nil
	})
}
