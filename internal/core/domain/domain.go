// Package domain holds the core data model shared across the pipeline:
// the immutable input comment and the enriched record the pipeline builds
// out of it.
package domain

// Comment is one raw input record. It is created by the producer and is
// read-only inside the pipeline.
type Comment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// Attribute names one derived field of an enriched record.
type Attribute string

const (
	AttributeEmotions      Attribute = "emotions"
	AttributeDesire        Attribute = "desire_and_wish"
	AttributeFailedSol     Attribute = "failed_solution"
	AttributeMetaphors     Attribute = "metaphors"
	AttributePainpoints    Attribute = "painpointsxfrustrations"
	AttributePractitioner  Attribute = "practitioner_reference"
	AttributeQuestion      Attribute = "question"
	AttributeTopics        Attribute = "topics"
	AttributeTriggerPhrase Attribute = "trigger_phrase"
	AttributeSentiment     Attribute = "sentiment"
)

// Attributes lists every attribute the pipeline can populate, in a stable
// order suitable for reports and tests.
func Attributes() []Attribute {
	return []Attribute{
		AttributeEmotions,
		AttributeDesire,
		AttributeFailedSol,
		AttributeMetaphors,
		AttributePainpoints,
		AttributePractitioner,
		AttributeQuestion,
		AttributeTopics,
		AttributeTriggerPhrase,
		AttributeSentiment,
	}
}

// PractitionerReference is a mention of a health or wellness practitioner:
// the matched practitioner type plus the sentence containing it.
type PractitionerReference struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
}

// SentimentResult is one scored comment returned by the sentiment
// coprocessor. Score is the compound polarity in [-1, 1].
type SentimentResult struct {
	ID        string  `json:"id"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"sentiment_score"`
}

// EnrichedRecord is a comment plus the derived attributes. Every attribute
// field is optional: nil (or a nil map/slice) means the owning extractor
// produced nothing or failed for this comment. A field is assigned at most
// once per pipeline run, as a whole value, never incrementally.
type EnrichedRecord struct {
	ID   string `json:"id"`
	Body string `json:"body"`

	Emotions       map[string]float64     `json:"emotions"`
	DesireAndWish  *string                `json:"desire_and_wish"`
	FailedSolution *string                `json:"failed_solution"`
	Metaphors      []string               `json:"metaphors"`
	Painpoints     *string                `json:"painpointsxfrustrations"`
	Practitioner   *PractitionerReference `json:"practitioner_reference"`
	Question       *string                `json:"question"`
	Topics         map[string]float64     `json:"topics"`
	TriggerPhrase  *string                `json:"trigger_phrase"`
	Sentiment      *string                `json:"sentiment"`
	SentimentScore *float64               `json:"sentiment_score"`
}

// NewEnrichedRecord initializes a record with only the comment fields; the
// attribute fields stay unset until the merger assigns them.
func NewEnrichedRecord(c Comment) *EnrichedRecord {
	return &EnrichedRecord{ID: c.ID, Body: c.Body}
}
