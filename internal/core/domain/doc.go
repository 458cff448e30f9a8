// Package domain defines the core business entities for the AIO
// retrieval engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - ContentEnvelope: The unified result of any retrieval
//   - StructuredDocument: A fetched AIO document before filtering
//   - IndexEntry: Ranking metadata for one chunk
//   - Chunk: One retrievable, independently verifiable content unit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, google/uuid (deterministic IDs)
//   - Cannot Import: Any other internal/ package
package domain
