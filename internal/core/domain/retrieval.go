package domain

// ParseOptions configures one retrieval.
type ParseOptions struct {
	// Query enables targeted retrieval of a chunk subset. Empty means
	// full-document selection.
	Query string

	// BypassCache skips the envelope cache for this retrieval.
	BypassCache bool
}

// VerificationReport is the user-facing outcome of verifying a
// structured endpoint, combining the document identity with the
// verifier's verdict.
type VerificationReport struct {
	// TargetURL is the structured-content URL that was verified.
	TargetURL string

	// Version is the document's declared aio_version.
	Version string

	// Result is the verifier's verdict.
	Result VerificationResult

	// ChunkCount is the number of content chunks in the document.
	ChunkCount int
}
