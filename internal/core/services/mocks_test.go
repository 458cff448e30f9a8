package services

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockTransport implements driven.Transport over canned responses keyed
// by URL. URLs without a canned response return 404.
type mockTransport struct {
	responses map[string]*driven.Response
	headResps map[string]*driven.Response
	errs      map[string]error
	fetched   []string
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		responses: make(map[string]*driven.Response),
		headResps: make(map[string]*driven.Response),
		errs:      make(map[string]error),
	}
}

func (m *mockTransport) Fetch(_ context.Context, url string) (*driven.Response, error) {
	m.fetched = append(m.fetched, url)
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return &driven.Response{StatusCode: http.StatusNotFound, Header: http.Header{}}, nil
}

func (m *mockTransport) Head(_ context.Context, url string) (*driven.Response, error) {
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	if resp, ok := m.headResps[url]; ok {
		return resp, nil
	}
	return &driven.Response{StatusCode: http.StatusNotFound, Header: http.Header{}}, nil
}

func okResponse(header http.Header) *driven.Response {
	if header == nil {
		header = http.Header{}
	}
	return &driven.Response{StatusCode: http.StatusOK, Header: header}
}

func (m *mockTransport) setPage(url, body string, header http.Header) {
	if header == nil {
		header = http.Header{}
	}
	m.responses[url] = &driven.Response{StatusCode: http.StatusOK, Header: header, Body: []byte(body)}
}

// mockConverter implements driven.NarrativeConverter by returning the
// input unchanged.
type mockConverter struct{}

func (mockConverter) ToNarrative(content string) string {
	return content
}

// mockKeyStore implements driven.KeyStore over a fixed key map.
type mockKeyStore struct {
	keys map[string]ed25519.PublicKey
}

func (m *mockKeyStore) PublicKey(keyID string) (ed25519.PublicKey, error) {
	key, ok := m.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKey, keyID)
	}
	return key, nil
}

// --- Test fixtures ---

func chunkHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// testDocument builds an unsigned three-chunk document with valid
// hashes and a consistent index.
func testDocument() *domain.StructuredDocument {
	chunks := []domain.Chunk{
		{ID: "a", Content: "Our plans start at $10 per month."},
		{ID: "b", Content: "Install the agent with one command."},
		{ID: "c", Content: "Answers to common questions."},
	}
	for i := range chunks {
		chunks[i].Hash = chunkHash(chunks[i].Content)
	}

	return &domain.StructuredDocument{
		Version: "1.0",
		Index: []domain.IndexEntry{
			{ID: "a", Title: "Pricing", Keywords: []string{"pricing", "cost", "plans"}, Summary: "Plan pricing", Priority: 0.9},
			{ID: "b", Title: "Installation", Keywords: []string{"install", "setup"}, Summary: "Setup guide", Priority: 0.7},
			{ID: "c", Title: "FAQ", Keywords: []string{"questions"}, Summary: "Common questions", Priority: 0.4},
		},
		Content: chunks,
	}
}

// signDocument signs a document in place and registers its public key
// in the returned key store.
func signDocument(t *testing.T, doc *domain.StructuredDocument, keyID string) *mockKeyStore {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	payload, err := SigningPayload(doc)
	require.NoError(t, err)

	doc.Signature = &domain.Signature{
		Algorithm: "ed25519",
		KeyID:     keyID,
		Value:     base64.StdEncoding.EncodeToString(ed25519.Sign(priv, payload)),
		Covers:    domain.SignatureCoversIndexContent,
	}
	return &mockKeyStore{keys: map[string]ed25519.PublicKey{keyID: pub}}
}

func allTrusted(doc *domain.StructuredDocument) map[string]bool {
	trust := make(map[string]bool, len(doc.Content))
	for i := range doc.Content {
		trust[doc.Content[i].ID] = true
	}
	return trust
}
