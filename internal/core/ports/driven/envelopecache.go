package driven

import (
	"context"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

// EnvelopeCache stores delivered envelopes keyed by URL+query.
//
// The cache sits outside the retrieval core: the orchestrator consults
// it before discovery and writes to it after delivery, but retrieval is
// fully functional without one.
type EnvelopeCache interface {
	// Get returns the cached envelope for a URL+query pair.
	// Returns domain.ErrNotFound when absent or expired.
	Get(ctx context.Context, url, query string) (*domain.ContentEnvelope, error)

	// Put stores an envelope for a URL+query pair, replacing any
	// previous entry.
	Put(ctx context.Context, url, query string, env *domain.ContentEnvelope) error

	// Close releases cache resources.
	Close() error
}
