// Package llm provides schema-constrained text generation against
// OpenAI-compatible chat endpoints, with optional on-disk response caching.
package llm

import (
	"context"
	"encoding/json"
)

// Request describes a single structured generation call. Schema is a JSON
// Schema document the response must conform to.
type Request struct {
	Prompt      string
	SchemaName  string
	Schema      json.RawMessage
	Temperature float32
}

// Client generates a JSON document answering the request.
type Client interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}
