package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

const maxMetaphors = 3

// metaphorClues is the fixed vocabulary of metaphor-indicative imagery.
var metaphorClues = []string{
	"storm", "ocean", "wave", "river", "sea", "wind", "flame", "fire", "ice", "snow", "cloud", "sun", "moon", "star",
	"light", "dark", "shadow", "earthquake", "volcano", "thunder", "lightning",
	"burning", "explosion", "melting", "freezing", "boiling", "spark", "crushing", "drowning", "bleeding", "suffocating",
	"battle", "war", "fight", "soldier", "weapon", "armor", "enemy",
	"road", "path", "journey", "bridge", "mountain", "valley", "horizon", "labyrinth",
	"mirror", "prison", "cage", "chains", "trap", "door", "window",
	"dagger", "sword", "sunshine", "somersault", "shattered glass",
}

var (
	metaphorCluesRx = regexp.MustCompile(`(?i)\b(` + strings.Join(quoteAll(metaphorClues), "|") + `)\b`)
	simileRx        = regexp.MustCompile(`(?i)\b(?:like|resembles|is a)\b\s+(?:\w+\s?){1,3}|\bas\s+\w+(?:\s+\w+)?\s+as\s+\w+(?:\s+\w+)?\b`)
)

type metaphorsValue []string

func (v metaphorsValue) Apply(rec *domain.EnrichedRecord) {
	rec.Metaphors = []string(v)
}

// MetaphorExtractor tries a fast fixed-vocabulary and simile pass first and
// falls back to ranking keyword candidates filtered to metaphor-indicative
// terms. Up to maxMetaphors hits are returned per comment.
type MetaphorExtractor struct {
	rule Rule
}

func NewMetaphorExtractor(rule Rule) *MetaphorExtractor {
	return &MetaphorExtractor{rule: rule}
}

func (e *MetaphorExtractor) Attribute() domain.Attribute {
	return domain.AttributeMetaphors
}

func (e *MetaphorExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	out := make([]Result, len(batch))

	for i, ann := range batch {
		hits := e.fastPass(ann)
		if len(hits) == 0 {
			hits = e.keywordPass(ann)
		}

		res := Result{ID: ann.Comment.ID}
		if len(hits) > 0 {
			res.Value = metaphorsValue(hits)
		}

		out[i] = res
	}

	return out, nil
}

func (e *MetaphorExtractor) fastPass(ann Annotated) []string {
	matches := metaphorCluesRx.FindAllString(ann.Body, -1)
	matches = append(matches, simileRx.FindAllString(ann.Body, -1)...)

	if e.rule.Include != nil {
		matches = append(matches, e.rule.Include.FindAllString(ann.Body, -1)...)
	}

	return dedupeLower(matches, maxMetaphors)
}

func (e *MetaphorExtractor) keywordPass(ann Annotated) []string {
	var out []string

	for _, kw := range ExtractKeywords(ann.Lower, 2, 5) {
		if metaphorCluesRx.MatchString(kw) || simileRx.MatchString(kw) {
			out = append(out, kw)
			if len(out) >= maxMetaphors {
				break
			}
		}
	}

	return out
}

func dedupeLower(matches []string, limit int) []string {
	var out []string

	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		norm := strings.ToLower(strings.TrimSpace(m))
		if norm == "" {
			continue
		}

		if _, ok := seen[norm]; ok {
			continue
		}

		seen[norm] = struct{}{}

		out = append(out, norm)
		if len(out) >= limit {
			break
		}
	}

	return out
}

func quoteAll(words []string) []string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}

	return quoted
}
