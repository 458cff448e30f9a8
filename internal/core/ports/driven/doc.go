// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - Transport: HTTP fetch capability (owned client, never global)
//   - NarrativeConverter: HTML-to-narrative-text conversion
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - EnvelopeCache: Envelope persistence keyed by URL+query. Without it,
//     every retrieval goes to the network.
//   - KeyStore: Trusted publisher keys. Without it, any signed document
//     fails signature verification and routes to fallback.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
