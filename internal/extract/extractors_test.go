package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// extractOne runs one extractor over a single-comment batch and applies the
// result onto a fresh record.
func extractOne(t *testing.T, ex Extractor, body string) *domain.EnrichedRecord {
	t.Helper()

	anns := Annotate([]domain.Comment{{ID: "c1", Body: body}}, 0)

	res, err := ex.Extract(context.Background(), anns)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "c1", res[0].ID)

	rec := domain.NewEnrichedRecord(anns[0].Comment)
	if res[0].Value != nil {
		res[0].Value.Apply(rec)
	}

	return rec
}

func TestDesireExtractor(t *testing.T) {
	ex := NewDesireExtractor(DefaultRules().Desire, 1)

	rec := extractOne(t, ex, "The mattress was expensive. I wish I could sleep through the night without pain.")
	require.NotNil(t, rec.DesireAndWish)
	assert.Equal(t, "I wish I could sleep through the night without pain.", *rec.DesireAndWish)

	rec = extractOne(t, ex, "Thanks for sharing this, very helpful writeup.")
	assert.Nil(t, rec.DesireAndWish)
}

func TestQuestionExtractor(t *testing.T) {
	ex := NewQuestionExtractor(DefaultRules().Question, 1)

	rec := extractOne(t, ex, "I have been dealing with this for years. How do I fix it?")
	require.NotNil(t, rec.Question)
	assert.Equal(t, "How do I fix it?", *rec.Question)

	rec = extractOne(t, ex, "Nobody ever answered me about this thing.")
	assert.Nil(t, rec.Question)
}

func TestFailedSolutionExtractor(t *testing.T) {
	ex := NewFailedSolutionExtractor(DefaultRules().FailedSolution, 1)

	rec := extractOne(t, ex, "I tried physical therapy for months but nothing helps.")
	require.NotNil(t, rec.FailedSolution)
	assert.Equal(t, "I tried physical therapy for months but nothing helps.", *rec.FailedSolution)

	rec = extractOne(t, ex, "This product completely changed my mornings for the better.")
	assert.Nil(t, rec.FailedSolution)
}

func TestPainpointExtractor(t *testing.T) {
	ex := NewPainpointExtractor(DefaultRules().Painpoints, 1)

	rec := extractOne(t, ex, "I can't sleep because my shoulder keeps aching every night.")
	require.NotNil(t, rec.Painpoints)

	rec = extractOne(t, ex, "Everything about the new routine has been wonderful so far.")
	assert.Nil(t, rec.Painpoints)
}

func TestPractitionerExtractor(t *testing.T) {
	ex := NewPractitionerExtractor(DefaultRules().Practitioner, 1)

	rec := extractOne(t, ex, "My chiropractor said it would take six weeks to improve.")
	require.NotNil(t, rec.Practitioner)
	assert.Equal(t, "chiropractor", rec.Practitioner.Type)
	assert.Equal(t, "My chiropractor said it would take six weeks to improve.", rec.Practitioner.Reference)

	// Vocabulary fallback when the curated pattern has no hit.
	rec = extractOne(t, ex, "I finally talked to my professor about the missed deadline.")
	require.NotNil(t, rec.Practitioner)
	assert.Equal(t, "professor", rec.Practitioner.Type)

	rec = extractOne(t, ex, "Honestly the weather was lovely all weekend long there.")
	assert.Nil(t, rec.Practitioner)
}

func TestTopicExtractor(t *testing.T) {
	ex := NewTopicExtractor(1)

	rec := extractOne(t, ex, "My doctor recommended more exercise and less stress.")
	require.NotNil(t, rec.Topics)
	assert.InDelta(t, 3.0/8.0, rec.Topics["health"], 1e-9)
	assert.NotContains(t, rec.Topics, "travel")

	rec = extractOne(t, ex, "zxq qwerty nothing relevant whatsoever")
	assert.Nil(t, rec.Topics)
}

func TestMetaphorExtractor_FastPass(t *testing.T) {
	ex := NewMetaphorExtractor(DefaultRules().Metaphors)

	rec := extractOne(t, ex, "It feels like a storm inside my head most days.")
	require.NotEmpty(t, rec.Metaphors)
	assert.Contains(t, rec.Metaphors, "storm")
	assert.LessOrEqual(t, len(rec.Metaphors), maxMetaphors)
}

func TestMetaphorExtractor_NoHit(t *testing.T) {
	ex := NewMetaphorExtractor(DefaultRules().Metaphors)

	rec := extractOne(t, ex, "Bought groceries and cooked dinner yesterday evening.")
	assert.Empty(t, rec.Metaphors)
}

func TestTriggerPhraseExtractor(t *testing.T) {
	ex := NewTriggerPhraseExtractor(DefaultRules().Trigger, 1)

	rec := extractOne(t, ex, "After the last flare up I finally decided to see a chiropractor.")
	require.NotNil(t, rec.TriggerPhrase)
	assert.Equal(t, "After the last flare up I finally decided to see a chiropractor.", *rec.TriggerPhrase)

	rec = extractOne(t, ex, "I have always enjoyed long morning walks in the park.")
	assert.Nil(t, rec.TriggerPhrase)
}

func TestEmotionExtractor_NeutralPlaceholder(t *testing.T) {
	ex := NewEmotionExtractor(nil, 1)

	rec := extractOne(t, ex, "Whatever text goes in here.")
	require.NotNil(t, rec.Emotions)
	assert.Equal(t, map[string]float64{"neutral": 1.0}, rec.Emotions)
}

func TestMapBatch_PreservesOrderAcrossSubWorkers(t *testing.T) {
	comments := make([]domain.Comment, 12)
	for i := range comments {
		comments[i] = domain.Comment{
			ID:   fmt.Sprintf("c%02d", i),
			Body: "I want to feel better about this whole situation.",
		}
	}

	anns := Annotate(comments, 0)

	ex := NewDesireExtractor(DefaultRules().Desire, 5)

	res, err := ex.Extract(context.Background(), anns)
	require.NoError(t, err)
	require.Len(t, res, len(comments))

	for i, r := range res {
		assert.Equal(t, comments[i].ID, r.ID)
	}
}
