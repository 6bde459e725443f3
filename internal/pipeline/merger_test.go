package pipeline

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/extract"
)

type questionValue string

func (v questionValue) Apply(rec *domain.EnrichedRecord) {
	s := string(v)
	rec.Question = &s
}

func newTestMerger() (*Merger, *Store) {
	logger := zerolog.Nop()
	store := NewStore()

	return NewMerger(store, &logger), store
}

func TestMerger_MergesAttributesAndSentiment(t *testing.T) {
	m, store := newTestMerger()

	batch := []domain.Comment{{ID: "a", Body: "one"}, {ID: "b", Body: "two"}}

	attrs := []extract.AttributeResult{{
		Attribute: domain.AttributeQuestion,
		Results: []extract.Result{
			{ID: "a", Value: questionValue("why?")},
			{ID: "b"}, // no hit for this comment
		},
	}}

	sentiments := []domain.SentimentResult{{ID: "b", Sentiment: "negative", Score: -0.6}}

	m.Merge(batch, attrs, sentiments)

	recA, ok := store.Get("a")
	require.True(t, ok)
	require.NotNil(t, recA.Question)
	assert.Equal(t, "why?", *recA.Question)
	assert.Nil(t, recA.Sentiment)

	recB, ok := store.Get("b")
	require.True(t, ok)
	assert.Nil(t, recB.Question)
	require.NotNil(t, recB.Sentiment)
	assert.Equal(t, "negative", *recB.Sentiment)
	require.NotNil(t, recB.SentimentScore)
	assert.InDelta(t, -0.6, *recB.SentimentScore, 1e-9)
}

func TestMerger_MisalignedIDsAreDropped(t *testing.T) {
	m, store := newTestMerger()

	batch := []domain.Comment{{ID: "a"}, {ID: "b"}}

	// Results shuffled relative to the batch: every entry is positionally
	// wrong and must be dropped, never written to the other record.
	attrs := []extract.AttributeResult{{
		Attribute: domain.AttributeQuestion,
		Results: []extract.Result{
			{ID: "b", Value: questionValue("swapped?")},
			{ID: "a", Value: questionValue("swapped?")},
		},
	}}

	m.Merge(batch, attrs, nil)

	for _, id := range []string{"a", "b"} {
		rec, ok := store.Get(id)
		require.True(t, ok)
		assert.Nil(t, rec.Question, "record %s must stay unset", id)
	}
}

func TestMerger_FailedAttributeSkipped(t *testing.T) {
	m, store := newTestMerger()

	batch := []domain.Comment{{ID: "a"}}

	attrs := []extract.AttributeResult{
		{Attribute: domain.AttributeEmotions, Err: errors.New("scorer down")},
		{Attribute: domain.AttributeQuestion, Results: []extract.Result{{ID: "a", Value: questionValue("ok?")}}},
	}

	m.Merge(batch, attrs, nil)

	rec, ok := store.Get("a")
	require.True(t, ok)
	assert.Nil(t, rec.Emotions)
	require.NotNil(t, rec.Question)
	assert.Equal(t, "ok?", *rec.Question)
}

func TestMerger_UnknownSentimentIDIgnored(t *testing.T) {
	m, store := newTestMerger()

	batch := []domain.Comment{{ID: "a"}}
	sentiments := []domain.SentimentResult{{ID: "ghost", Sentiment: "positive", Score: 0.9}}

	m.Merge(batch, nil, sentiments)

	rec, ok := store.Get("a")
	require.True(t, ok)
	assert.Nil(t, rec.Sentiment)
	assert.Equal(t, 1, store.Len())
}
