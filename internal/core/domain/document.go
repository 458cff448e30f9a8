package domain

// StructuredDocument is the raw parsed form of a fetched AIO document,
// before trust filtering. Unknown JSON fields in source documents are
// ignored: decoding is a strict required-field schema, never reflection
// over arbitrary keys.
type StructuredDocument struct {
	// Version is the document's semantic version string ("aio_version" on
	// the wire). The verifier rejects unrecognised major versions.
	Version string `json:"aio_version"`

	// Signature is the optional document-level signature block. Absence
	// downgrades trust but does not block usage.
	Signature *Signature `json:"signature,omitempty"`

	// Index is the ranking metadata, in publisher order.
	Index []IndexEntry `json:"index"`

	// Content holds the retrievable chunks. Every id referenced in Index
	// must appear exactly once here or the document is malformed.
	Content []Chunk `json:"content"`
}

// ChunkByID returns the content entry with the given id, or nil.
func (d *StructuredDocument) ChunkByID(id string) *Chunk {
	for i := range d.Content {
		if d.Content[i].ID == id {
			return &d.Content[i]
		}
	}
	return nil
}

// Signature describes what was signed and by whom.
type Signature struct {
	// Algorithm identifies the signature scheme. Only "ed25519" is supported.
	Algorithm string `json:"algorithm"`

	// KeyID names the publisher key in the consumer's trust store.
	KeyID string `json:"key_id"`

	// Value is the base64-encoded signature bytes.
	Value string `json:"value"`

	// Covers describes the signed payload. Must be "index+content".
	Covers string `json:"covers"`
}

// SignatureCoversIndexContent is the only recognised Covers value.
const SignatureCoversIndexContent = "index+content"

// DefaultPriority is assumed when an index entry omits priority.
const DefaultPriority = 0.5

// IndexEntry carries the ranking metadata for one chunk.
type IndexEntry struct {
	// ID matches the corresponding content chunk.
	ID string `json:"id"`

	// Title is the human-readable chunk title.
	Title string `json:"title"`

	// Keywords are matched case-insensitively during targeted retrieval.
	Keywords []string `json:"keywords"`

	// Summary is a short chunk description.
	Summary string `json:"summary"`

	// Priority is reserved for future ranking refinement. The base
	// algorithm uses keyword presence only, keeping selection
	// deterministic and auditable.
	Priority float64 `json:"priority"`
}

// Chunk is one retrievable content unit.
type Chunk struct {
	// ID is unique within a document.
	ID string `json:"id"`

	// Content is the raw text payload.
	Content string `json:"content"`

	// Hash is the content-integrity digest of Content, in the form
	// "sha256:<hex>". An empty hash is treated as trusted.
	Hash string `json:"hash,omitempty"`
}
