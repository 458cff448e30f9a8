package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceType tags the provenance of a ContentEnvelope.
// It never changes after construction.
type SourceType string

// Envelope provenance values.
const (
	// SourceTypeStructured marks content retrieved from a verified AIO document.
	SourceTypeStructured SourceType = "structured"

	// SourceTypeFallback marks content produced by fallback HTML extraction.
	SourceTypeFallback SourceType = "fallback"

	// SourceTypeCached marks an envelope served from the envelope cache.
	SourceTypeCached SourceType = "cached"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeStructured, SourceTypeFallback, SourceTypeCached:
		return true
	default:
		return false
	}
}

// RetrievalMethod records which path produced an envelope's narrative.
type RetrievalMethod string

// Retrieval method values.
const (
	// MethodFull means every trusted chunk was included, in content order.
	MethodFull RetrievalMethod = "full"

	// MethodTargeted means a query selected a chunk subset, in index order.
	MethodTargeted RetrievalMethod = "targeted"

	// MethodScrape means the narrative came from raw-page extraction.
	MethodScrape RetrievalMethod = "scrape"
)

// IsValid returns true if the retrieval method is recognised.
func (m RetrievalMethod) IsValid() bool {
	switch m {
	case MethodFull, MethodTargeted, MethodScrape:
		return true
	default:
		return false
	}
}

// envelopeNamespace scopes deterministic envelope IDs. Envelope IDs are
// UUIDv5 values derived from the source URL so repeated retrievals of
// the same page produce the same ID.
var envelopeNamespace = uuid.MustParse("8f0f2f5e-5b0a-4c87-9d7e-aa1640d3e201")

// NewEnvelopeID derives the stable envelope identifier for a source URL.
func NewEnvelopeID(sourceURL string) string {
	return uuid.NewSHA1(envelopeNamespace, []byte(sourceURL)).String()
}

// NarrativeSeparator joins chunk contents into one narrative document.
const NarrativeSeparator = "\n\n"

// ContentEnvelope is the unified output of any retrieval, regardless of
// the path taken. It is the sole externally visible result type.
type ContentEnvelope struct {
	// ID is derived deterministically from SourceURL.
	ID string `json:"id"`

	// SourceURL is the originally requested URL.
	SourceURL string `json:"source_url"`

	// SourceType tags provenance: structured, fallback, or cached.
	SourceType SourceType `json:"source_type"`

	// Narrative is the human/LLM-readable payload. When Chunks is
	// non-empty it is exactly the chunk contents joined by a blank line.
	Narrative string `json:"narrative"`

	// TokenEstimate is a coarse consumption-cost proxy: ceil(len/4).
	TokenEstimate int `json:"token_estimate"`

	// NoiseScore is 0.0 for fully verified structured content and trends
	// toward 1.0 as provenance becomes less trustworthy.
	NoiseScore float64 `json:"noise_score"`

	// RetrievalMethod records which path produced the narrative.
	RetrievalMethod RetrievalMethod `json:"retrieval_method"`

	// Chunks are the chunk records actually used to build the narrative.
	// Empty for pure fallback extraction.
	Chunks []Chunk `json:"chunks,omitempty"`

	// FetchedAt is when the envelope was assembled.
	FetchedAt time.Time `json:"fetched_at"`

	// AIOVersion is the structured document version, when applicable.
	AIOVersion string `json:"aio_version,omitempty"`
}

// EstimateTokens returns the coarse token estimate for a text:
// ceil(characterCount / 4), never negative.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// JoinNarrative concatenates chunk contents in order, separated by a
// single blank line.
func JoinNarrative(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i := range chunks {
		parts[i] = chunks[i].Content
	}
	return strings.Join(parts, NarrativeSeparator)
}
