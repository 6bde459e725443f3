package extract

import (
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

const defaultMaxChars = 2000

// Annotated is the shared, read-only linguistic view of one comment,
// computed once per batch and handed to every extractor.
type Annotated struct {
	Comment   domain.Comment
	Body      string // capped at the annotation char limit
	Lower     string
	Sentences []string
	WordCount int
}

// Annotate builds the per-batch annotations. The body is capped at maxChars
// to bound the cost of the sentence pass regardless of comment length.
func Annotate(batch []domain.Comment, maxChars int) []Annotated {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	anns := make([]Annotated, len(batch))
	for i, c := range batch {
		body := capRunes(c.Body, maxChars)

		anns[i] = Annotated{
			Comment:   c,
			Body:      body,
			Lower:     strings.ToLower(body),
			Sentences: SplitSentences(body),
			WordCount: len(strings.Fields(body)),
		}
	}

	return anns
}

// SplitSentences splits text after sentence-final punctuation followed by
// whitespace. The trailing fragment is kept even without a terminator.
func SplitSentences(text string) []string {
	var out []string

	start := 0

	for i := 0; i < len(text); i++ {
		if !isSentenceEnd(text[i]) || i+1 >= len(text) || !isASCIISpace(text[i+1]) {
			continue
		}

		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			out = append(out, s)
		}

		for i+1 < len(text) && isASCIISpace(text[i+1]) {
			i++
		}

		start = i + 1
	}

	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}

	return out
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func capRunes(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}

	rs := []rune(s)
	if len(rs) <= maxChars {
		return s
	}

	return string(rs[:maxChars])
}
