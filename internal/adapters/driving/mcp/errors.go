// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the AIO retrieval engine. It lets AI assistants fetch clean,
// verified page content directly instead of scraping raw HTML.
package mcp

import "errors"

// ErrMissingRetrieverService is returned when the retriever service is
// not provided.
var ErrMissingRetrieverService = errors.New("mcp: retriever service is required")
