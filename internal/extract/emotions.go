package extract

import (
	"context"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// EmotionLabels is the GoEmotions label set a classifier-backed scorer is
// expected to produce scores over.
var EmotionLabels = []string{
	"admiration", "amusement", "anger", "annoyance", "approval", "caring",
	"confusion", "curiosity", "desire", "disappointment", "disapproval",
	"disgust", "embarrassment", "excitement", "fear", "gratitude",
	"grief", "joy", "love", "nervousness", "optimism", "pride",
	"realization", "relief", "remorse", "sadness", "surprise", "neutral",
}

// EmotionScorer scores one text over the emotion label set. It is a
// pluggable strategy: swapping in a real classifier requires no change to
// the extractor contract.
type EmotionScorer interface {
	Score(text string) map[string]float64
}

// NeutralScorer is the deterministic placeholder used when no classifier is
// configured: every comment scores as fully neutral.
type NeutralScorer struct{}

func (NeutralScorer) Score(string) map[string]float64 {
	return map[string]float64{"neutral": 1.0}
}

type emotionValue map[string]float64

func (v emotionValue) Apply(rec *domain.EnrichedRecord) {
	rec.Emotions = map[string]float64(v)
}

type EmotionExtractor struct {
	scorer     EmotionScorer
	subWorkers int
}

func NewEmotionExtractor(scorer EmotionScorer, subWorkers int) *EmotionExtractor {
	if scorer == nil {
		scorer = NeutralScorer{}
	}

	return &EmotionExtractor{scorer: scorer, subWorkers: subWorkers}
}

func (e *EmotionExtractor) Attribute() domain.Attribute {
	return domain.AttributeEmotions
}

func (e *EmotionExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		scores := e.scorer.Score(ann.Body)
		if len(scores) == 0 {
			return nil
		}

		return emotionValue(scores)
	})
}
