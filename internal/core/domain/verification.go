package domain

// InvalidReason explains a whole-document verification failure.
type InvalidReason string

// Whole-document failure reasons.
const (
	// ReasonUnsupportedVersion means the document's major version is not supported.
	ReasonUnsupportedVersion InvalidReason = "unsupported_version"

	// ReasonStructureInvalid means the index/content cross-reference
	// invariant does not hold.
	ReasonStructureInvalid InvalidReason = "structure_invalid"

	// ReasonSignatureInvalid means a present signature failed verification.
	ReasonSignatureInvalid InvalidReason = "signature_invalid"
)

// VerificationResult reports whether a structured document is usable.
//
// A document is valid as a whole even when individual chunks fail their
// digest check: per-chunk corruption degrades gracefully rather than
// forcing a full fallback. Failing chunks are recorded as untrusted and
// must be excluded from narrative assembly.
type VerificationResult struct {
	// Valid is true when all whole-document checks pass.
	Valid bool

	// Reason is set when Valid is false.
	Reason InvalidReason

	// ChunkTrust holds the per-chunk digest verdict, keyed by chunk id.
	ChunkTrust map[string]bool

	// Signed is true when the document carried a signature that verified.
	// Unsigned documents are usable but trust-downgraded.
	Signed bool
}

// TrustedCount returns how many chunks passed their digest check.
func (r *VerificationResult) TrustedCount() int {
	n := 0
	for _, ok := range r.ChunkTrust {
		if ok {
			n++
		}
	}
	return n
}
