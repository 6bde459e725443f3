package extract

import (
	"sort"
	"strings"
)

// stopwords filtered out of keyword candidates.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {}, "then": {},
	"i": {}, "im": {}, "ive": {}, "my": {}, "me": {}, "we": {}, "our": {}, "you": {}, "your": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {},
	"with": {}, "so": {}, "not": {}, "no": {}, "just": {}, "very": {}, "really": {}, "as": {},
	"like": {}, "about": {}, "from": {}, "by": {}, "up": {}, "out": {}, "all": {}, "some": {},
}

type keywordCandidate struct {
	phrase string
	score  float64
	first  int
}

// ExtractKeywords ranks candidate phrases of up to n words from lowercased
// text by term frequency, boosting multi-word phrases. At most top phrases
// are returned, most salient first. This stands in for a statistical
// keyword extractor; candidates feed the metaphor fallback filter.
func ExtractKeywords(lower string, n, top int) []string {
	words := tokenize(lower)
	if len(words) == 0 {
		return nil
	}

	counts := make(map[string]*keywordCandidate)

	add := func(phrase string, pos, size int) {
		c, ok := counts[phrase]
		if !ok {
			c = &keywordCandidate{phrase: phrase, first: pos}
			counts[phrase] = c
		}

		c.score += float64(size)
	}

	for i, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}

		add(w, i, 1)

		if n < 2 || i+1 >= len(words) {
			continue
		}

		next := words[i+1]
		if _, stop := stopwords[next]; stop {
			continue
		}

		add(w+" "+next, i, 2)
	}

	ranked := make([]*keywordCandidate, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].first < ranked[j].first
	})

	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.phrase
	}

	return out
}

func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '\'' || r == '’' || r == '-':
			return false
		default:
			return true
		}
	})
}
