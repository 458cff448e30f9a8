package mcp

import (
	"github.com/bricsin4u/AIO-research/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Retriever provides the parse/discover/verify operations.
	Retriever driving.RetrieverService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetrieverService
	}
	return nil
}
