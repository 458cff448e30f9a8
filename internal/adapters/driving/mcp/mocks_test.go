package mcp

import (
	"context"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driving"
)

// mockRetrieverService implements driving.RetrieverService for testing.
type mockRetrieverService struct {
	envelope *domain.ContentEnvelope
	target   *domain.DiscoveryTarget
	report   *domain.VerificationReport
	err      error

	lastURL   string
	lastQuery string
}

var _ driving.RetrieverService = (*mockRetrieverService)(nil)

func (m *mockRetrieverService) Parse(_ context.Context, url string, opts domain.ParseOptions) (*domain.ContentEnvelope, error) {
	m.lastURL = url
	m.lastQuery = opts.Query
	if m.err != nil {
		return nil, m.err
	}
	return m.envelope, nil
}

func (m *mockRetrieverService) Discover(_ context.Context, url string) (*domain.DiscoveryTarget, error) {
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	return m.target, nil
}

func (m *mockRetrieverService) Verify(_ context.Context, url string) (*domain.VerificationReport, error) {
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}
