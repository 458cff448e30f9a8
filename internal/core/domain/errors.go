package domain

import "errors"

// Domain errors represent retrieval pipeline outcomes.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnreachable indicates the original URL could not be
	// fetched at all (DNS, connection, or timeout failure). This is the
	// single fatal retrieval error: there is nothing left to fall back to.
	ErrSourceUnreachable = errors.New("source unreachable")

	// ErrNoTargetedMatch indicates a query matched no trusted chunks.
	// Not a failure: the orchestrator substitutes the full selection.
	ErrNoTargetedMatch = errors.New("no targeted match")

	// ErrUnknownKey indicates a signature names a key the trust store
	// does not hold. Treated as a signature verification failure.
	ErrUnknownKey = errors.New("unknown signing key")
)
