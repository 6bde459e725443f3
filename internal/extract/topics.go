package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// topicKeywords maps each topic to its indicator terms. Scores are keyword
// occurrence counts normalized by comment word count; only non-zero topics
// are emitted.
var topicKeywords = map[string][]string{
	"health": {
		"doctor", "pain", "injury", "exercise", "hospital", "nurse", "treatment", "therapy",
		"surgery", "medicine", "medication", "disease", "illness", "recovery", "clinic",
		"mental health", "stress", "anxiety", "depression", "fitness", "workout",
	},
	"work": {
		"job", "manager", "deadline", "office", "boss", "coworker", "colleague", "salary",
		"promotion", "career", "internship", "meeting", "overtime", "project", "task",
		"workplace", "employment", "resignation", "fired", "hired",
	},
	"technology": {
		"app", "software", "computer", "device", "ai", "artificial intelligence", "machine learning",
		"smartphone", "laptop", "tablet", "programming", "coding", "developer", "bug",
		"update", "server", "database", "internet", "cloud", "cybersecurity",
	},
	"education": {
		"school", "university", "college", "student", "teacher", "professor", "class", "lecture",
		"homework", "assignment", "exam", "test", "study", "degree", "diploma", "course", "online learning",
	},
	"finance": {
		"money", "budget", "salary", "tax", "bank", "loan", "credit", "debt", "investment",
		"stocks", "cryptocurrency", "bitcoin", "savings", "interest rate", "mortgage", "payment", "income",
	},
	"relationships": {
		"friend", "boyfriend", "girlfriend", "husband", "wife", "partner", "relationship",
		"marriage", "dating", "breakup", "divorce", "love", "romance", "family", "parent", "child",
	},
	"travel": {
		"trip", "vacation", "holiday", "flight", "airport", "hotel", "tour", "beach", "mountain",
		"hiking", "camping", "cruise", "road trip", "destination", "passport", "visa",
	},
	"food": {
		"restaurant", "meal", "breakfast", "lunch", "dinner", "snack", "cooking", "recipe",
		"baking", "drink", "coffee", "tea", "pizza", "burger", "dessert", "fruit", "vegetable",
	},
	"politics": {
		"government", "president", "prime minister", "election", "vote", "policy", "law",
		"politician", "party", "democracy", "parliament", "congress", "campaign", "protest",
	},
	"sports": {
		"game", "match", "tournament", "league", "team", "player", "coach", "score",
		"goal", "win", "lose", "draw", "training", "championship", "competition", "stadium",
	},
	"environment": {
		"climate", "pollution", "recycling", "sustainability", "green", "eco", "carbon",
		"emissions", "wildlife", "forest", "ocean", "plastic", "nature", "energy", "renewable",
	},
	"shopping": {
		"store", "shop", "mall", "product", "purchase", "buy", "sale", "discount",
		"price", "order", "cart", "delivery", "return", "refund",
	},
}

type topicsValue map[string]float64

func (v topicsValue) Apply(rec *domain.EnrichedRecord) {
	rec.Topics = map[string]float64(v)
}

type TopicExtractor struct {
	keywords   map[string][]string
	subWorkers int
}

func NewTopicExtractor(subWorkers int) *TopicExtractor {
	return &TopicExtractor{keywords: topicKeywords, subWorkers: subWorkers}
}

func (e *TopicExtractor) Attribute() domain.Attribute {
	return domain.AttributeTopics
}

func (e *TopicExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		length := ann.WordCount
		if length == 0 {
			length = 1
		}

		scores := make(map[string]float64)

		for topic, keywords := range e.keywords {
			count := 0
			for _, kw := range keywords {
				count += countOccurrences(ann.Lower, kw)
			}

			if count > 0 {
				scores[topic] = float64(count) / float64(length)
			}
		}

		if len(scores) == 0 {
			return nil
		}

		return topicsValue(scores)
	})
}

func countOccurrences(haystack, needle string) int {
	if needle == "" {
		return 0
	}

	return strings.Count(haystack, needle)
}
