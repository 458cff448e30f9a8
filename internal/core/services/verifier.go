package services

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// Verifier decides whether a fetched structured document is usable.
//
// Whole-document checks (version, structure, signature) gate the
// document as a unit. Chunk digests are checked independently: one bad
// chunk is excluded downstream rather than discarding the page.
type Verifier struct {
	keys            driven.KeyStore
	supportedMajors []int
}

// NewVerifier creates a verifier. The key store may be nil, in which
// case any signed document fails signature verification.
func NewVerifier(keys driven.KeyStore) *Verifier {
	return &Verifier{keys: keys, supportedMajors: domain.SupportedMajorVersions}
}

// Verify runs all integrity checks on a document.
func (v *Verifier) Verify(doc *domain.StructuredDocument) *domain.VerificationResult {
	logger.Section("Verification")

	if doc == nil {
		return &domain.VerificationResult{Valid: false, Reason: domain.ReasonStructureInvalid}
	}

	if !v.versionSupported(doc.Version) {
		logger.Warn("Unsupported aio_version %q", doc.Version)
		return &domain.VerificationResult{Valid: false, Reason: domain.ReasonUnsupportedVersion}
	}

	if !crossReferenceHolds(doc) {
		logger.Warn("Index/content cross-reference violated")
		return &domain.VerificationResult{Valid: false, Reason: domain.ReasonStructureInvalid}
	}

	signed := false
	if doc.Signature != nil {
		if !v.signatureValid(doc) {
			logger.Warn("Signature verification failed (key %q)", doc.Signature.KeyID)
			return &domain.VerificationResult{Valid: false, Reason: domain.ReasonSignatureInvalid}
		}
		signed = true
		logger.Info("Signature verified (key %q)", doc.Signature.KeyID)
	} else {
		logger.Debug("Document is unsigned; trust downgraded")
	}

	trust := make(map[string]bool, len(doc.Content))
	for i := range doc.Content {
		trust[doc.Content[i].ID] = chunkDigestValid(&doc.Content[i])
	}

	result := &domain.VerificationResult{Valid: true, ChunkTrust: trust, Signed: signed}
	logger.Debug("Chunk trust: %d/%d passed", result.TrustedCount(), len(doc.Content))
	return result
}

// versionSupported checks the major component of a semantic version
// string against the supported majors.
func (v *Verifier) versionSupported(version string) bool {
	version = strings.TrimSpace(version)
	if version == "" {
		return false
	}
	major, err := strconv.Atoi(strings.SplitN(version, ".", 2)[0])
	if err != nil {
		return false
	}
	for _, m := range v.supportedMajors {
		if m == major {
			return true
		}
	}
	return false
}

// crossReferenceHolds checks that every chunk referenced in the index
// has exactly one content entry with the same id.
func crossReferenceHolds(doc *domain.StructuredDocument) bool {
	counts := make(map[string]int, len(doc.Content))
	for i := range doc.Content {
		counts[doc.Content[i].ID]++
	}
	for i := range doc.Index {
		if counts[doc.Index[i].ID] != 1 {
			return false
		}
	}
	return true
}

// signatureValid recomputes the signing payload and verifies the
// declared Ed25519 signature against the trusted key material.
func (v *Verifier) signatureValid(doc *domain.StructuredDocument) bool {
	sig := doc.Signature
	if !strings.EqualFold(sig.Algorithm, "ed25519") {
		return false
	}
	if sig.Covers != domain.SignatureCoversIndexContent {
		return false
	}
	if v.keys == nil {
		return false
	}

	key, err := v.keys.PublicKey(sig.KeyID)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(sig.Value)
	if err != nil {
		return false
	}

	payload, err := SigningPayload(doc)
	if err != nil {
		return false
	}
	return ed25519.Verify(key, payload, raw)
}

// SigningPayload builds the canonical byte sequence a publisher signs:
// the JSON serialization of index then content with sorted object keys
// and no incidental whitespace.
func SigningPayload(doc *domain.StructuredDocument) ([]byte, error) {
	index := make([]map[string]any, len(doc.Index))
	for i, e := range doc.Index {
		index[i] = map[string]any{
			"id":       e.ID,
			"title":    e.Title,
			"keywords": e.Keywords,
			"summary":  e.Summary,
			"priority": e.Priority,
		}
	}
	content := make([]map[string]any, len(doc.Content))
	for i, c := range doc.Content {
		content[i] = map[string]any{
			"id":      c.ID,
			"content": c.Content,
			"hash":    c.Hash,
		}
	}

	// encoding/json emits map keys in sorted order, giving the stable
	// key ordering the canonical form requires.
	idxJSON, err := json.Marshal(index)
	if err != nil {
		return nil, err
	}
	cntJSON, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(idxJSON)+len(cntJSON)+24)
	payload = append(payload, `{"index":`...)
	payload = append(payload, idxJSON...)
	payload = append(payload, `,"content":`...)
	payload = append(payload, cntJSON...)
	payload = append(payload, '}')
	return payload, nil
}

// chunkDigestValid recomputes a chunk's content digest and compares it
// to the declared hash. An empty hash counts as trusted. Declared
// hashes may be truncated; a declared prefix of the computed digest
// still passes.
func chunkDigestValid(chunk *domain.Chunk) bool {
	declared := strings.TrimSpace(chunk.Hash)
	if declared == "" {
		return true
	}

	algorithm := "sha256"
	value := declared
	if i := strings.IndexByte(declared, ':'); i >= 0 {
		algorithm = strings.ToLower(declared[:i])
		value = declared[i+1:]
	}
	if algorithm != "sha256" || value == "" {
		return false
	}

	sum := sha256.Sum256([]byte(chunk.Content))
	computed := hex.EncodeToString(sum[:])
	return strings.HasPrefix(computed, strings.ToLower(value))
}
