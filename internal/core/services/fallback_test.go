package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricsin4u/AIO-research/internal/adapters/driven/narrative/html"
	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

func newExtractor() *FallbackExtractor {
	return NewFallbackExtractor(html.New(), domain.DefaultFallbackNoiseScore)
}

func TestFallbackExtractor_Extract_EnvelopeShape(t *testing.T) {
	extractor := newExtractor()

	env := extractor.Extract([]byte("<html><body><p>Hello there.</p></body></html>"), "https://example.com/x")

	require.NotNil(t, env)
	assert.Equal(t, domain.SourceTypeFallback, env.SourceType)
	assert.Equal(t, domain.MethodScrape, env.RetrievalMethod)
	assert.Equal(t, domain.DefaultFallbackNoiseScore, env.NoiseScore)
	assert.Equal(t, "https://example.com/x", env.SourceURL)
	assert.Equal(t, domain.NewEnvelopeID("https://example.com/x"), env.ID)
	assert.Equal(t, "Hello there.", env.Narrative)
	assert.Equal(t, domain.EstimateTokens(env.Narrative), env.TokenEstimate)
	assert.Empty(t, env.Chunks)
	assert.False(t, env.FetchedAt.IsZero())
}

func TestFallbackExtractor_Extract_StripsChrome(t *testing.T) {
	extractor := newExtractor()
	page := `<html><body>
		<nav><a href="/">Home</a><a href="/about">About</a></nav>
		<header>Site Header</header>
		<script>trackVisitor();</script>
		<p>The actual article text.</p>
		<footer>Copyright 2026</footer>
	</body></html>`

	env := extractor.Extract([]byte(page), "https://example.com")

	assert.Contains(t, env.Narrative, "The actual article text.")
	assert.NotContains(t, env.Narrative, "Home")
	assert.NotContains(t, env.Narrative, "Site Header")
	assert.NotContains(t, env.Narrative, "trackVisitor")
	assert.NotContains(t, env.Narrative, "Copyright")
}

func TestFallbackExtractor_Extract_PrefersMainRegion(t *testing.T) {
	extractor := newExtractor()
	page := `<html><body>
		<div>Outside text.</div>
		<main><h1>Title</h1><p>Main body text.</p></main>
		<div>More outside text.</div>
	</body></html>`

	env := extractor.Extract([]byte(page), "https://example.com")

	assert.Contains(t, env.Narrative, "# Title")
	assert.Contains(t, env.Narrative, "Main body text.")
	assert.NotContains(t, env.Narrative, "Outside text.")
}

func TestFallbackExtractor_Extract_ArticleWhenNoMain(t *testing.T) {
	extractor := newExtractor()
	page := `<html><body>
		<div>Sidebar junk.</div>
		<article><p>Article body.</p></article>
	</body></html>`

	env := extractor.Extract([]byte(page), "https://example.com")

	assert.Contains(t, env.Narrative, "Article body.")
	assert.NotContains(t, env.Narrative, "Sidebar junk.")
}

func TestFallbackExtractor_Extract_NoiseContainersRemoved(t *testing.T) {
	extractor := newExtractor()
	page := `<html><body>
		<div class="cookie-banner">We use cookies!</div>
		<div id="newsletter-signup">Subscribe now</div>
		<p>Readable paragraph.</p>
	</body></html>`

	env := extractor.Extract([]byte(page), "https://example.com")

	assert.Contains(t, env.Narrative, "Readable paragraph.")
	assert.NotContains(t, env.Narrative, "cookies")
	assert.NotContains(t, env.Narrative, "Subscribe")
}

func TestFallbackExtractor_Extract_EmptyInput(t *testing.T) {
	extractor := newExtractor()

	env := extractor.Extract(nil, "https://example.com")

	require.NotNil(t, env)
	assert.Empty(t, env.Narrative)
	assert.Zero(t, env.TokenEstimate)
	assert.Equal(t, domain.MethodScrape, env.RetrievalMethod)
}

func TestFallbackExtractor_Extract_MalformedHTMLDegrades(t *testing.T) {
	extractor := newExtractor()

	env := extractor.Extract([]byte("<p>Unclosed paragraph <div>nested <b>text"), "https://example.com")

	assert.Contains(t, env.Narrative, "Unclosed paragraph")
	assert.Contains(t, env.Narrative, "text")
}
