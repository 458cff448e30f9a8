package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelopeID_Deterministic(t *testing.T) {
	first := NewEnvelopeID("https://example.com/docs")
	second := NewEnvelopeID("https://example.com/docs")
	other := NewEnvelopeID("https://example.com/pricing")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 36)
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"12345678", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTokens(tt.text), "text %q", tt.text)
	}
}

func TestJoinNarrative(t *testing.T) {
	chunks := []Chunk{
		{ID: "a", Content: "First."},
		{ID: "b", Content: "Second."},
	}

	assert.Equal(t, "First.\n\nSecond.", JoinNarrative(chunks))
	assert.Equal(t, "", JoinNarrative(nil))
	assert.Equal(t, "Only.", JoinNarrative(chunks[:1]))
}

func TestSourceType_IsValid(t *testing.T) {
	assert.True(t, SourceTypeStructured.IsValid())
	assert.True(t, SourceTypeFallback.IsValid())
	assert.True(t, SourceTypeCached.IsValid())
	assert.False(t, SourceType("other").IsValid())
}

func TestRetrievalMethod_IsValid(t *testing.T) {
	assert.True(t, MethodFull.IsValid())
	assert.True(t, MethodTargeted.IsValid())
	assert.True(t, MethodScrape.IsValid())
	assert.False(t, RetrievalMethod("").IsValid())
}
