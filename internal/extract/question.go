package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

type questionValue string

func (v questionValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.Question = &s
}

// QuestionExtractor returns the first embedded question: a sentence ending
// in a question mark, or one opening with an interrogative per the rule
// table (returned without trailing punctuation).
type QuestionExtractor struct {
	rule       Rule
	subWorkers int
}

func NewQuestionExtractor(rule Rule, subWorkers int) *QuestionExtractor {
	return &QuestionExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *QuestionExtractor) Attribute() domain.Attribute {
	return domain.AttributeQuestion
}

func (e *QuestionExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			stripped := strings.TrimSpace(sent)

			if !e.rule.Accepts(stripped) {
				continue
			}

			if strings.HasSuffix(stripped, "?") {
				return questionValue(stripped)
			}

			if e.rule.Include.MatchString(stripped) {
				return questionValue(strings.TrimRight(stripped, ".!?"))
			}
		}

		return nil
	})
}
