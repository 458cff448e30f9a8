package driving

import (
	"context"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

// RetrieverService is the engine's entry point. Every retrieval yields
// a ContentEnvelope; the only fatal error is the original URL being
// unreachable (domain.ErrSourceUnreachable).
type RetrieverService interface {
	// Parse retrieves clean content for a URL, preferring the structured
	// path and falling back to raw-page extraction.
	Parse(ctx context.Context, url string, opts domain.ParseOptions) (*domain.ContentEnvelope, error)

	// Discover reports whether a URL advertises structured content,
	// without fetching the content itself. A nil target means no
	// structured source exists - that is a normal outcome, not an error.
	Discover(ctx context.Context, url string) (*domain.DiscoveryTarget, error)

	// Verify fetches the structured document for a URL and reports its
	// integrity verdict, including per-chunk trust.
	Verify(ctx context.Context, url string) (*domain.VerificationReport, error)
}
