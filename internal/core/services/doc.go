// Package services implements the retrieval pipeline behind the driving
// ports.
//
// The pipeline is a short sequential state machine per retrieval:
//
//	Discover -> FetchStructured -> Verify -> Select -> Delivered
//
// with every disqualifying failure routing to fallback extraction
// instead of surfacing to the caller. Independent retrievals share no
// mutable state and are safe to run concurrently.
package services
