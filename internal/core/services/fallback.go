package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// Tags removed wholesale before narrative conversion: navigation and
// page chrome, plus anything that never carries readable content.
var chromeTagNames = []string{
	"nav", "header", "footer", "aside", "script", "style", "noscript",
	"iframe", "form", "button", "select", "textarea", "svg", "canvas",
	"video", "audio", "object", "embed",
}

// Noise words in class/id attributes that mark an element as chrome.
const noiseAttrWords = `sidebar|cookie|banner|advert|promo|popup|modal|overlay|social|share|newsletter|subscribe`

// Pre-compiled expressions for chrome stripping.
var (
	chromeTags = compileTagStrippers(chromeTagNames)

	// Elements whose class or id names typical noise. Regex matching is
	// shallow: nested noise containers keep their inner text, which the
	// fixed fallback noise score already accounts for.
	noiseContainers = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<div\b[^>]*(?:class|id)\s*=\s*["'][^"']*(?:` + noiseAttrWords + `)[^"']*["'][^>]*>.*?</div>`),
		regexp.MustCompile(`(?is)<section\b[^>]*(?:class|id)\s*=\s*["'][^"']*(?:` + noiseAttrWords + `)[^"']*["'][^>]*>.*?</section>`),
		regexp.MustCompile(`(?is)<ul\b[^>]*(?:class|id)\s*=\s*["'][^"']*(?:` + noiseAttrWords + `)[^"']*["'][^>]*>.*?</ul>`),
	}

	mainRegion    = regexp.MustCompile(`(?is)<main\b[^>]*>(.*?)</main>`)
	articleRegion = regexp.MustCompile(`(?is)<article\b[^>]*>(.*?)</article>`)
	bodyRegion    = regexp.MustCompile(`(?is)<body\b[^>]*>(.*?)</body>`)

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// compileTagStrippers builds one element-removal expression per tag.
func compileTagStrippers(names []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		res[i] = regexp.MustCompile(`(?is)<` + name + `\b[^>]*>.*?</` + name + `>`)
	}
	return res
}

// FallbackExtractor produces a best-effort envelope directly from a raw
// page when no structured source exists or the structured path failed.
// Extraction never fails: malformed HTML degrades to whatever readable
// text survives, and empty input yields an envelope with an empty
// narrative.
type FallbackExtractor struct {
	converter  driven.NarrativeConverter
	noiseScore float64
}

// NewFallbackExtractor creates an extractor with the configured fixed
// noise score for scrape-derived envelopes.
func NewFallbackExtractor(converter driven.NarrativeConverter, noiseScore float64) *FallbackExtractor {
	return &FallbackExtractor{converter: converter, noiseScore: noiseScore}
}

// Extract builds a fallback envelope from raw HTML.
func (e *FallbackExtractor) Extract(rawHTML []byte, sourceURL string) *domain.ContentEnvelope {
	logger.Section("Fallback Extraction")

	narrative := e.narrativeFrom(string(rawHTML))
	logger.Debug("Extracted %d characters of narrative", len(narrative))

	return &domain.ContentEnvelope{
		ID:              domain.NewEnvelopeID(sourceURL),
		SourceURL:       sourceURL,
		SourceType:      domain.SourceTypeFallback,
		Narrative:       narrative,
		TokenEstimate:   domain.EstimateTokens(narrative),
		NoiseScore:      e.noiseScore,
		RetrievalMethod: domain.MethodScrape,
		FetchedAt:       time.Now().UTC(),
	}
}

// narrativeFrom strips chrome, focuses on the main content region, and
// converts the remainder to narrative text.
func (e *FallbackExtractor) narrativeFrom(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	for _, re := range chromeTags {
		html = re.ReplaceAllString(html, "")
	}
	for _, re := range noiseContainers {
		html = re.ReplaceAllString(html, "")
	}

	// Prefer <main>, then <article>, then <body>.
	region := html
	if m := mainRegion.FindStringSubmatch(html); m != nil {
		region = m[1]
	} else if m := articleRegion.FindStringSubmatch(html); m != nil {
		region = m[1]
	} else if m := bodyRegion.FindStringSubmatch(html); m != nil {
		region = m[1]
	}

	text := e.converter.ToNarrative(region)

	// Collapse runs of blank lines to a single blank line.
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
