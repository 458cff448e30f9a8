package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

// ParseInput is the input schema for the parse tool.
type ParseInput struct {
	URL   string `json:"url" jsonschema:"the page URL to retrieve content for"`
	Query string `json:"query,omitempty" jsonschema:"optional query for targeted chunk retrieval"`
}

// ParseOutput is the output schema for the parse tool.
type ParseOutput struct {
	ID              string  `json:"id"`
	SourceURL       string  `json:"source_url"`
	SourceType      string  `json:"source_type"`
	RetrievalMethod string  `json:"retrieval_method"`
	TokenEstimate   int     `json:"token_estimate"`
	NoiseScore      float64 `json:"noise_score"`
	ChunkCount      int     `json:"chunk_count"`
	Narrative       string  `json:"narrative"`
}

// DiscoverInput is the input schema for the discover tool.
type DiscoverInput struct {
	URL string `json:"url" jsonschema:"the page URL to check for structured content support"`
}

// DiscoverOutput is the output schema for the discover tool.
type DiscoverOutput struct {
	Supported bool   `json:"supported"`
	TargetURL string `json:"target_url,omitempty"`
	Method    string `json:"method,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse",
		Description: "Retrieve clean, verified content for a URL, with optional targeted retrieval",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discover",
		Description: "Check whether a URL advertises machine-readable structured content",
	}, s.handleDiscover)
}

// handleParse handles the parse tool invocation.
func (s *Server) handleParse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	env, err := s.ports.Retriever.Parse(ctx, input.URL, domain.ParseOptions{Query: input.Query})
	if err != nil {
		return nil, ParseOutput{}, err
	}

	return nil, ParseOutput{
		ID:              env.ID,
		SourceURL:       env.SourceURL,
		SourceType:      string(env.SourceType),
		RetrievalMethod: string(env.RetrievalMethod),
		TokenEstimate:   env.TokenEstimate,
		NoiseScore:      env.NoiseScore,
		ChunkCount:      len(env.Chunks),
		Narrative:       env.Narrative,
	}, nil
}

// handleDiscover handles the discover tool invocation.
func (s *Server) handleDiscover(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscoverInput,
) (*mcp.CallToolResult, DiscoverOutput, error) {
	target, err := s.ports.Retriever.Discover(ctx, input.URL)
	if err != nil {
		return nil, DiscoverOutput{}, err
	}
	if target == nil {
		return nil, DiscoverOutput{Supported: false}, nil
	}

	return nil, DiscoverOutput{
		Supported: true,
		TargetURL: target.URL,
		Method:    string(target.Method),
	}, nil
}
