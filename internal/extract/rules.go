package extract

import (
	"regexp"
	"unicode/utf8"
)

const (
	defaultMinSentenceLen = 20
	defaultMaxSentenceLen = 1000
)

// firstPersonRx gates rules that only apply to first-person statements.
var firstPersonRx = regexp.MustCompile(`(?i)\b(i|i['’]?m|i am|i['’]?ve|i was|we|we['’]?re|we have)\b`)

// exclusionRx filters out politeness, meta chatter, contact instructions,
// bare reactions, URLs and email addresses. Shared by every rule.
var exclusionRx = regexp.MustCompile(`(?is)(\b(thanks|thank\s+you|cheers|appreciate\s+(it|that)|you['’]?re\s+welcome!?|good\s+luck|best\s+wishes)\b|\b(following\s+(this|along)|subscrib(ed|ing)|same\s+here|me\s+too)\b|\b(reach\s+out|contact\s+(support|me)|feel\s+free\s+to|let\s+me\s+know|dm\s+me|pm\s+me)\b|^(lol|lmao|omg|wow|yep|yeah|ok|okay|sure|cool|nice|agreed|same)$|https?://\S+|[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,})`)

// Rule is the opaque per-attribute configuration the category owner hands
// the pipeline: an include pattern plus acceptance gates.
type Rule struct {
	Include      *regexp.Regexp
	Exclude      *regexp.Regexp
	RequireFirst bool
	MinLen       int
	MaxLen       int
}

// Accepts applies the gates (length bounds, exclusions, first-person
// requirement) without consulting the include pattern.
func (r Rule) Accepts(sentence string) bool {
	n := utf8.RuneCountInString(sentence)
	if r.MinLen > 0 && n < r.MinLen {
		return false
	}

	if r.MaxLen > 0 && n > r.MaxLen {
		return false
	}

	if r.Exclude != nil && r.Exclude.MatchString(sentence) {
		return false
	}

	if r.RequireFirst && !firstPersonRx.MatchString(sentence) {
		return false
	}

	return true
}

// Matches reports whether the sentence passes the gates and the include
// pattern.
func (r Rule) Matches(sentence string) bool {
	return r.Accepts(sentence) && r.Include != nil && r.Include.MatchString(sentence)
}

// TriggerRule matches sentences that pair a temporal/causal cue with a
// first-person action. Both patterns must hit the same sentence.
type TriggerRule struct {
	Rule
	Cue    *regexp.Regexp
	Action *regexp.Regexp
}

func (r TriggerRule) Matches(sentence string) bool {
	return r.Accepts(sentence) && r.Cue.MatchString(sentence) && r.Action.MatchString(sentence)
}

// RuleSet bundles the rule tables for every rule-driven extractor.
type RuleSet struct {
	Painpoints     Rule
	FailedSolution Rule
	Desire         Rule
	Question       Rule
	Metaphors      Rule
	Practitioner   Rule
	Trigger        TriggerRule
}

// DefaultRules returns the built-in rule tables. Callers may substitute
// their own compiled tables; the extractors treat them as opaque data.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Painpoints: Rule{
			Include:      regexp.MustCompile(`(?i)\b(can(?:not|['’]?t)|couldn['’]?t|unable|struggl\w+|trouble|hard\s+to|difficult\s+to|confus\w+|problem|issue|bug|error|fail(?:ed|ing|s)?|broke\w*|crash\w*|freez\w*|hang\w*|time(?:d\s+)?out|isn['’]?t\s+working|not\s+working|won['’]?t\s+work|doesn['’]?t\s+work|keeps?\s+\w+ing|stuck|too\s+slow|takes?\s+too\s+long|latency|laggy|hurts?|pain|flare[-\s]?ups?|flare\w*)\b`),
			Exclude:      exclusionRx,
			RequireFirst: true,
			MinLen:       defaultMinSentenceLen,
			MaxLen:       defaultMaxSentenceLen,
		},
		FailedSolution: Rule{
			Include:      regexp.MustCompile(`(?i)\b(?:i(?:\s+have)?\s+tried(?:\s+everything)?|tried(?:\s+all(?:\s+the)?\s+standard\s+fixes)?|attempted|gave\s+(?:it|this)\s+a\s+try|didn['’]?t\s+help|doesn['’]?t\s+work|no\s+relief|no\s+luck|still\s+(?:have|facing|dealing\s+with|seeing)\b|even\s+after|reinstall\w*|keeps\s+\w+ing|it\s+broke|supplements?\s+didn['’]?t|prescribed\s+another|nothing\s+(?:i\s+do|helps?)|made\s+(?:the\s+problem|it)\s+worse|still\s+failed|seen\s+multiple\s+doctors|without\s+success)\b`),
			Exclude:      exclusionRx,
			RequireFirst: true,
			MinLen:       defaultMinSentenceLen,
			MaxLen:       defaultMaxSentenceLen,
		},
		Desire: Rule{
			Include:      regexp.MustCompile(`(?i)\b(?:i\s+(?:just\s+)?want\s+(?:to|a|an|the)\b|i['’]d\s+(?:like|love)\s+(?:to|a|an|the)\b|i\s+hope\s+(?:to|i\s+can)\b|i\s+wish\s+i\s+could\b|my\s+goal\s+is\s+to\b|i\s+(?:plan\s+to|am\s+planning\s+to|aim\s+to)\b|i['’]?m\s+(?:trying|looking)\s+to\b|i\s+need\s+(?:to|a|an|the)\b|so\s+that\s+i\s+can\b|i\s+could\s+really\s+use\b)`),
			Exclude:      exclusionRx,
			RequireFirst: true,
			MinLen:       defaultMinSentenceLen,
			MaxLen:       defaultMaxSentenceLen,
		},
		Question: Rule{
			Include: regexp.MustCompile(`(?is)(\?|^\s*(how|what|why|where|when|who|(does|did|has|have|would|should|could|will|is|are|was|were)\b|do\s+(i|you|we|they)\b|can\s+(i|you|anyone)\b|any\s+(advice|tips)\b|eli5\b))`),
			Exclude: exclusionRx,
			MinLen:  10,
			MaxLen:  200,
		},
		Metaphors: Rule{
			Include: regexp.MustCompile(`(?i)(end\s+of\s+my\s+rope|wits['’]?\s*end|dead\s+end|uphill\s+battle|brick\s+wall|running\s+on\s+empty|burn(?:ed|t)\s+out|feels?\s+like\s+[^,.;!?]+|it['’]?s\s+like\s+[^,.;!?]+|as\s+if\s+[^,.;!?]+)`),
			Exclude: exclusionRx,
			MinLen:  defaultMinSentenceLen,
			MaxLen:  defaultMaxSentenceLen,
		},
		Practitioner: Rule{
			Include: regexp.MustCompile(`(?i)\b(chiropractic|chiropractor|chiro|physio|physical\s+therap(?:y|ists?)|pt|massage(?:\s+(?:therapy|therapists?))?|rmt|acupunctur\w*|osteopath\w*|clinic|practice|practitioner|specialist|provider|yoga\s+studio|pemf|pulsed\s+electro(?:-|\s*)magnetic|(?:saw|visited|went\s+to|booked|made\s+an\s+appointment\s+with)\s+(?:a|the|my)\s+(?:doctor|md|do|nd))\b`),
			Exclude: exclusionRx,
			MinLen:  defaultMinSentenceLen,
			MaxLen:  defaultMaxSentenceLen,
		},
		Trigger: TriggerRule{
			Rule: Rule{
				Exclude:      exclusionRx,
				RequireFirst: true,
				MinLen:       defaultMinSentenceLen,
				MaxLen:       defaultMaxSentenceLen,
			},
			Cue:    regexp.MustCompile(`(?i)\b(after|when|since|once|because|ever\s+since|as\s+soon\s+as|the\s+moment|the\s+day|that['’]?s\s+when|at\s+that\s+point|made\s+me|led\s+me\s+to|pushed\s+me\s+to|forced\s+me\s+to)\b`),
			Action: regexp.MustCompile(`(?i)\b(i|we)\s+(decided\s+to|started(\s+to)?|began(\s+to)?|finally\s+decided\s+to|gave\s+(it|this)\s+a\s+try|gave\s+in\s+and\s+tried|tried|signed\s+up|made\s+(an\s+)?appointment|looked\s+into|researched|switched|went\s+to|bought|ordered|booked|reached\s+out|messaged\s+support|called|saw\s+(a|my))\b`),
		},
	}
}
