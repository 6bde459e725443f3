package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/extract"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
)

const (
	logKeyCommentID = "comment_id"
	logKeyAttribute = "attribute"
)

// Merger combines per-attribute extractor outputs and the sentiment results
// for one batch into the shared record store. Each attribute is written at
// most once per record, as a single assignment.
type Merger struct {
	store  *Store
	logger *zerolog.Logger
}

func NewMerger(store *Store, logger *zerolog.Logger) *Merger {
	return &Merger{store: store, logger: logger}
}

// Merge writes one batch's results. Failed extractors and missing sentiment
// entries leave their fields unset; a positional id mismatch is logged as a
// data-integrity warning and the entry is treated as missing, never
// substituted.
func (m *Merger) Merge(batch []domain.Comment, attrs []extract.AttributeResult, sentiments []domain.SentimentResult) {
	for _, c := range batch {
		m.store.Put(c)
	}

	for _, ar := range attrs {
		if ar.Err != nil {
			continue
		}

		m.mergeAttribute(batch, ar)
	}

	m.mergeSentiment(batch, sentiments)

	observability.RecordsEnriched.Add(float64(len(batch)))
}

func (m *Merger) mergeAttribute(batch []domain.Comment, ar extract.AttributeResult) {
	for i, res := range ar.Results {
		if res.ID != batch[i].ID {
			observability.IntegrityMismatches.WithLabelValues(string(ar.Attribute)).Inc()

			m.logger.Warn().
				Str(logKeyAttribute, string(ar.Attribute)).
				Str(logKeyCommentID, batch[i].ID).
				Str("result_id", res.ID).
				Int("position", i).
				Msg("attribute result id does not align with batch, dropping entry")

			continue
		}

		if res.Value == nil {
			continue
		}

		m.apply(batch[i].ID, ar.Attribute, res.Value.Apply)
	}
}

func (m *Merger) mergeSentiment(batch []domain.Comment, sentiments []domain.SentimentResult) {
	byID := make(map[string]domain.SentimentResult, len(sentiments))
	for _, sr := range sentiments {
		byID[sr.ID] = sr
	}

	for _, c := range batch {
		sr, ok := byID[c.ID]
		if !ok {
			continue
		}

		m.apply(c.ID, domain.AttributeSentiment, func(rec *domain.EnrichedRecord) {
			sentiment := sr.Sentiment
			score := sr.Score
			rec.Sentiment = &sentiment
			rec.SentimentScore = &score
		})
	}
}

func (m *Merger) apply(id string, attr domain.Attribute, fn func(rec *domain.EnrichedRecord)) {
	if !m.store.Apply(id, fn) {
		m.logger.Warn().
			Str(logKeyAttribute, string(attr)).
			Str(logKeyCommentID, id).
			Msg("record missing from store, dropping attribute value")
	}
}
