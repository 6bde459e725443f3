package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

type desireValue string

func (v desireValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.DesireAndWish = &s
}

// DesireExtractor returns the first sentence expressing a want, wish or
// goal, per the desire rule table.
type DesireExtractor struct {
	rule       Rule
	subWorkers int
}

func NewDesireExtractor(rule Rule, subWorkers int) *DesireExtractor {
	return &DesireExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *DesireExtractor) Attribute() domain.Attribute {
	return domain.AttributeDesire
}

func (e *DesireExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			if e.rule.Matches(sent) {
				return desireValue(strings.TrimSpace(sent))
			}
		}

		return nil
	})
}
