package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

type triggerValue string

func (v triggerValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.TriggerPhrase = &s
}

// TriggerPhraseExtractor returns the first sentence where a temporal or
// causal cue co-occurs with a first-person action, marking the moment the
// author decided to act.
type TriggerPhraseExtractor struct {
	rule       TriggerRule
	subWorkers int
}

func NewTriggerPhraseExtractor(rule TriggerRule, subWorkers int) *TriggerPhraseExtractor {
	return &TriggerPhraseExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *TriggerPhraseExtractor) Attribute() domain.Attribute {
	return domain.AttributeTriggerPhrase
}

func (e *TriggerPhraseExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			if e.rule.Matches(sent) {
				return triggerValue(strings.TrimSpace(sent))
			}
		}

		return nil
	})
}
