package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

type painpointValue string

func (v painpointValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.Painpoints = &s
}

// PainpointExtractor returns the first sentence expressing frustration or a
// blocking problem.
type PainpointExtractor struct {
	rule       Rule
	subWorkers int
}

func NewPainpointExtractor(rule Rule, subWorkers int) *PainpointExtractor {
	return &PainpointExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *PainpointExtractor) Attribute() domain.Attribute {
	return domain.AttributePainpoints
}

func (e *PainpointExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			if e.rule.Matches(sent) {
				return painpointValue(strings.TrimSpace(sent))
			}
		}

		return nil
	})
}
