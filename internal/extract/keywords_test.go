package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_RanksByFrequency(t *testing.T) {
	text := "back pain again today, back pain keeps me awake, awful pain"

	kws := ExtractKeywords(text, 2, 3)

	assert.NotEmpty(t, kws)
	// The repeated bigram outscores its parts.
	assert.Equal(t, "back pain", kws[0])
	assert.Contains(t, kws, "pain")
}

func TestExtractKeywords_SkipsStopwords(t *testing.T) {
	kws := ExtractKeywords("the and of it was very really just about", 2, 10)
	assert.Empty(t, kws)
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Nil(t, ExtractKeywords("", 2, 5))
}
