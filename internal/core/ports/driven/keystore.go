package driven

import "crypto/ed25519"

// KeyStore resolves trusted publisher signing keys.
//
// Key distribution and trust decisions live outside the retrieval core;
// the verifier only asks for the public key a signature names. A key the
// store does not hold makes the signature unverifiable, which the
// verifier treats as a signature failure.
type KeyStore interface {
	// PublicKey returns the Ed25519 public key for a key id.
	// Returns domain.ErrUnknownKey when the id is not trusted.
	PublicKey(keyID string) (ed25519.PublicKey, error)
}
