package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

func TestVerifier_Verify_ValidUnsigned(t *testing.T) {
	verifier := NewVerifier(nil)

	result := verifier.Verify(testDocument())

	require.True(t, result.Valid)
	assert.False(t, result.Signed)
	assert.Equal(t, 3, result.TrustedCount())
}

func TestVerifier_Verify_NilDocument(t *testing.T) {
	verifier := NewVerifier(nil)

	result := verifier.Verify(nil)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonStructureInvalid, result.Reason)
}

func TestVerifier_Verify_UnsupportedMajorVersion(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Version = "3.0"

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonUnsupportedVersion, result.Reason)
}

func TestVerifier_Verify_VersionMinorIgnored(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Version = "1.7"

	result := verifier.Verify(doc)

	assert.True(t, result.Valid)
}

func TestVerifier_Verify_MalformedVersion(t *testing.T) {
	verifier := NewVerifier(nil)

	for _, version := range []string{"", "abc", "v1.0", "  "} {
		doc := testDocument()
		doc.Version = version

		result := verifier.Verify(doc)

		assert.False(t, result.Valid, "version %q", version)
		assert.Equal(t, domain.ReasonUnsupportedVersion, result.Reason)
	}
}

func TestVerifier_Verify_IndexReferencesMissingChunk(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Content = doc.Content[:2] // drop chunk "c", still indexed

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonStructureInvalid, result.Reason)
}

func TestVerifier_Verify_DuplicateContentID(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Content = append(doc.Content, doc.Content[0])

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonStructureInvalid, result.Reason)
}

func TestVerifier_Verify_ExtraUnindexedChunkAllowed(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Content = append(doc.Content, domain.Chunk{ID: "d", Content: "extra"})

	result := verifier.Verify(doc)

	assert.True(t, result.Valid)
}

func TestVerifier_Verify_SignedDocument(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	verifier := NewVerifier(keys)

	result := verifier.Verify(doc)

	require.True(t, result.Valid)
	assert.True(t, result.Signed)
}

func TestVerifier_Verify_TamperedContent(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	doc.Content[0].Content = "Our plans start at $999 per month."
	doc.Content[0].Hash = chunkHash(doc.Content[0].Content)
	verifier := NewVerifier(keys)

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_UnknownKey(t *testing.T) {
	doc := testDocument()
	signDocument(t, doc, "pub-1")
	verifier := NewVerifier(&mockKeyStore{keys: nil})

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_NilKeyStore(t *testing.T) {
	doc := testDocument()
	signDocument(t, doc, "pub-1")
	verifier := NewVerifier(nil)

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_WrongCovers(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	doc.Signature.Covers = "index"
	verifier := NewVerifier(keys)

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_UnsupportedAlgorithm(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	doc.Signature.Algorithm = "rsa-pss"
	verifier := NewVerifier(keys)

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_MalformedSignatureValue(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	doc.Signature.Value = "%%% not base64 %%%"
	verifier := NewVerifier(keys)

	result := verifier.Verify(doc)

	assert.False(t, result.Valid)
	assert.Equal(t, domain.ReasonSignatureInvalid, result.Reason)
}

func TestVerifier_Verify_BadChunkDigestIsolated(t *testing.T) {
	verifier := NewVerifier(nil)
	doc := testDocument()
	doc.Content[1].Hash = chunkHash("something else entirely")

	result := verifier.Verify(doc)

	require.True(t, result.Valid)
	assert.True(t, result.ChunkTrust["a"])
	assert.False(t, result.ChunkTrust["b"])
	assert.True(t, result.ChunkTrust["c"])
}

func TestVerifier_Verify_Deterministic(t *testing.T) {
	doc := testDocument()
	keys := signDocument(t, doc, "pub-1")
	verifier := NewVerifier(keys)

	first := verifier.Verify(doc)
	second := verifier.Verify(doc)

	assert.Equal(t, first, second)
}

func TestChunkDigestValid(t *testing.T) {
	content := "hello world"

	tests := []struct {
		name    string
		hash    string
		trusted bool
	}{
		{"empty hash trusted", "", true},
		{"matching digest", chunkHash(content), true},
		{"truncated prefix", chunkHash(content)[:23], true},
		{"bare hex without prefix", chunkHash(content)[len("sha256:"):], true},
		{"mismatched digest", chunkHash("other"), false},
		{"unsupported algorithm", "md5:abcdef", false},
		{"empty value", "sha256:", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := &domain.Chunk{ID: "x", Content: content, Hash: tt.hash}
			assert.Equal(t, tt.trusted, chunkDigestValid(chunk))
		})
	}
}

func TestSigningPayload_Canonical(t *testing.T) {
	doc := testDocument()

	first, err := SigningPayload(doc)
	require.NoError(t, err)
	second, err := SigningPayload(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, len(first) > 0)
	assert.Equal(t, byte('{'), first[0])
	assert.Contains(t, string(first), `{"index":[`)
	assert.Contains(t, string(first), `,"content":[`)
	assert.NotContains(t, string(first), "\n")
}
