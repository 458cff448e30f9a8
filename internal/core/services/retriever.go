package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driving"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrieverService = (*Retriever)(nil)

// Retriever sequences discovery, fetch, verification and selection,
// routing every disqualifying failure to fallback extraction. It is the
// engine's single entry point.
//
// A Retriever holds no per-retrieval state; independent retrievals are
// safe to run concurrently.
type Retriever struct {
	transport driven.Transport
	discovery *DiscoveryResolver
	verifier  *Verifier
	ranker    *Ranker
	fallback  *FallbackExtractor
	cache     driven.EnvelopeCache // optional
	cfg       domain.Config
}

// NewRetriever wires the pipeline. The cache may be nil.
func NewRetriever(
	transport driven.Transport,
	converter driven.NarrativeConverter,
	keys driven.KeyStore,
	cache driven.EnvelopeCache,
	cfg domain.Config,
) *Retriever {
	return &Retriever{
		transport: transport,
		discovery: NewDiscoveryResolver(transport, cfg.DefaultPath),
		verifier:  NewVerifier(keys),
		ranker:    NewRanker(),
		fallback:  NewFallbackExtractor(converter, cfg.FallbackNoiseScore),
		cache:     cache,
		cfg:       cfg,
	}
}

// Parse retrieves clean content for a URL. It always returns an
// envelope except when the original URL itself is unreachable, which
// surfaces as domain.ErrSourceUnreachable, or when the context is
// cancelled mid-retrieval.
func (r *Retriever) Parse(ctx context.Context, url string, opts domain.ParseOptions) (*domain.ContentEnvelope, error) {
	if cached := r.cacheLookup(ctx, url, opts); cached != nil {
		return cached, nil
	}

	target, page, err := r.discovery.Resolve(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", url, err)
	}

	env, err := r.structuredOrFallback(ctx, url, target, page, opts.Query)
	if err != nil {
		return nil, err
	}

	r.cacheStore(ctx, url, opts, env)
	return env, nil
}

// structuredOrFallback walks the state machine after discovery.
func (r *Retriever) structuredOrFallback(
	ctx context.Context, url string, target *domain.DiscoveryTarget, page []byte, query string,
) (*domain.ContentEnvelope, error) {
	if target == nil {
		logger.Info("No structured source; using fallback extraction")
		return r.fallbackEnvelope(ctx, page, url)
	}
	logger.Info("Structured target %s (method=%s)", target.URL, target.Method)

	doc, err := r.fetchStructured(ctx, target.URL)
	if err != nil {
		logger.Warn("Structured fetch failed: %v", err)
		return r.fallbackEnvelope(ctx, page, url)
	}

	result := r.verifier.Verify(doc)
	if !result.Valid {
		logger.Warn("Document rejected: %s", result.Reason)
		return r.fallbackEnvelope(ctx, page, url)
	}

	return r.assemble(url, doc, result, query), nil
}

// fetchStructured GETs and decodes a structured document. Unknown JSON
// fields are ignored; a missing aio_version disqualifies the payload.
func (r *Retriever) fetchStructured(ctx context.Context, url string) (*domain.StructuredDocument, error) {
	resp, err := r.transport.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var doc domain.StructuredDocument
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Version == "" {
		return nil, errors.New("missing aio_version")
	}
	return &doc, nil
}

// assemble builds the structured envelope from the selected chunks.
func (r *Retriever) assemble(
	url string, doc *domain.StructuredDocument, result *domain.VerificationResult, query string,
) *domain.ContentEnvelope {
	method := domain.MethodTargeted
	if len(QueryTokens(query)) == 0 {
		// No usable tokens survive the length floor; same as no query.
		method = domain.MethodFull
	}

	ids, err := r.ranker.Select(doc, result.ChunkTrust, query)
	if errors.Is(err, domain.ErrNoTargetedMatch) {
		// An empty targeted result is worse than an unfiltered one.
		logger.Info("No targeted match; substituting full selection")
		ids, _ = r.ranker.Select(doc, result.ChunkTrust, "")
		method = domain.MethodFull
	}

	chunks := make([]domain.Chunk, 0, len(ids))
	for _, id := range ids {
		if c := doc.ChunkByID(id); c != nil {
			chunks = append(chunks, *c)
		}
	}

	narrative := domain.JoinNarrative(chunks)

	noise := 0.0
	if !result.Signed {
		noise = r.cfg.UnsignedNoiseScore
	}

	return &domain.ContentEnvelope{
		ID:              domain.NewEnvelopeID(url),
		SourceURL:       url,
		SourceType:      domain.SourceTypeStructured,
		Narrative:       narrative,
		TokenEstimate:   domain.EstimateTokens(narrative),
		NoiseScore:      noise,
		RetrievalMethod: method,
		Chunks:          chunks,
		FetchedAt:       time.Now().UTC(),
		AIOVersion:      doc.Version,
	}
}

// fallbackEnvelope routes to the extractor unless the context is done -
// cancellation short-circuits the remaining stages without completing
// a fallback.
func (r *Retriever) fallbackEnvelope(ctx context.Context, page []byte, url string) (*domain.ContentEnvelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.fallback.Extract(page, url), nil
}

// cacheLookup returns a cache hit re-tagged as cached provenance.
func (r *Retriever) cacheLookup(ctx context.Context, url string, opts domain.ParseOptions) *domain.ContentEnvelope {
	if r.cache == nil || opts.BypassCache {
		return nil
	}
	env, err := r.cache.Get(ctx, url, opts.Query)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache lookup failed: %v", err)
		}
		return nil
	}
	logger.Info("Cache hit for %s", url)
	hit := *env
	hit.SourceType = domain.SourceTypeCached
	return &hit
}

// cacheStore persists a delivered envelope, best effort.
func (r *Retriever) cacheStore(ctx context.Context, url string, opts domain.ParseOptions, env *domain.ContentEnvelope) {
	if r.cache == nil || opts.BypassCache {
		return
	}
	if err := r.cache.Put(ctx, url, opts.Query, env); err != nil {
		logger.Warn("Cache store failed: %v", err)
	}
}

// Discover reports structured-content support for a URL without
// fetching the content itself.
func (r *Retriever) Discover(ctx context.Context, url string) (*domain.DiscoveryTarget, error) {
	target, _, err := r.discovery.Resolve(ctx, url)
	return target, err
}

// Verify discovers and fetches the structured document for a URL, then
// reports the verifier's verdict including per-chunk trust.
func (r *Retriever) Verify(ctx context.Context, url string) (*domain.VerificationReport, error) {
	target, _, err := r.discovery.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: no structured source for %s", domain.ErrNotFound, url)
	}

	doc, err := r.fetchStructured(ctx, target.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.URL, err)
	}

	return &domain.VerificationReport{
		TargetURL:  target.URL,
		Version:    doc.Version,
		Result:     *r.verifier.Verify(doc),
		ChunkCount: len(doc.Content),
	}, nil
}
