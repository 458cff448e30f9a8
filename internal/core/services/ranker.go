package services

import (
	"strings"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// minTokenLength is the floor below which query words are dropped.
// Short stop-words fall out naturally - a precision/recall trade-off,
// not a stemmer.
const minTokenLength = 4

// Ranker selects the ordered subset of chunk ids to include in a
// narrative. Entries are never re-ordered by relevance score; matching
// is plain keyword presence with source order preserved, keeping
// selection deterministic and auditable.
type Ranker struct{}

// NewRanker creates a ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Select returns the chunk ids to assemble, given per-chunk trust.
//
// With no query, it returns every trusted chunk id in content order.
// With a query, it returns matched trusted ids in index order, or
// domain.ErrNoTargetedMatch when nothing matched - callers substitute
// the full selection rather than deliver an empty narrative.
func (r *Ranker) Select(doc *domain.StructuredDocument, trust map[string]bool, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return r.selectAll(doc, trust), nil
	}

	tokens := QueryTokens(query)
	logger.Debug("Query tokens: %v", tokens)
	if len(tokens) == 0 {
		// Nothing survived the length floor; same as no query.
		return r.selectAll(doc, trust), nil
	}

	var ids []string
	for i := range doc.Index {
		entry := &doc.Index[i]
		if !trust[entry.ID] {
			continue
		}
		if entryMatches(entry, tokens) {
			ids = append(ids, entry.ID)
		}
	}

	if len(ids) == 0 {
		logger.Debug("No index entry matched the query")
		return nil, domain.ErrNoTargetedMatch
	}
	logger.Debug("Targeted selection: %d of %d chunks", len(ids), len(doc.Content))
	return ids, nil
}

// selectAll returns every trusted chunk id, preserving content order.
func (r *Ranker) selectAll(doc *domain.StructuredDocument, trust map[string]bool) []string {
	ids := make([]string, 0, len(doc.Content))
	for i := range doc.Content {
		if trust[doc.Content[i].ID] {
			ids = append(ids, doc.Content[i].ID)
		}
	}
	return ids
}

// QueryTokens tokenizes a query into lowercase words longer than three
// characters, with edge punctuation trimmed.
func QueryTokens(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, "?.,!:;\"'()")
		if len(word) >= minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// entryMatches reports whether any token is a substring of the entry's
// match corpus (id + title + keywords, case-insensitive).
func entryMatches(entry *domain.IndexEntry, tokens []string) bool {
	var corpus strings.Builder
	corpus.WriteString(entry.ID)
	corpus.WriteByte(' ')
	corpus.WriteString(entry.Title)
	for _, kw := range entry.Keywords {
		corpus.WriteByte(' ')
		corpus.WriteString(kw)
	}
	haystack := strings.ToLower(corpus.String())

	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
