package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/provos/terraform-secure/internal/logger"
)

type cachingClient struct {
	inner Client
	dir   string
	scope string
	log   *logger.Logger
}

// WithCache wraps a client so that identical requests are served from disk.
// Scope partitions the cache, typically by model name, so switching models
// never replays stale answers. Cache failures degrade to a live call.
func WithCache(inner Client, dir, scope string, log *logger.Logger) Client {
	if dir == "" {
		return inner
	}
	return &cachingClient{inner: inner, dir: dir, scope: scope, log: log}
}

func (c *cachingClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	path := c.entryPath(req)

	if data, err := os.ReadFile(path); err == nil {
		c.log.WithFields(map[string]any{"path": path}).Debug("LLM cache hit")
		return data, nil
	}

	data, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.log.Warn("failed to create LLM cache directory")
		return data, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.log.Warn("failed to write LLM cache entry")
	}
	return data, nil
}

func (c *cachingClient) entryPath(req Request) string {
	hash := sha256.New()
	fmt.Fprintf(hash, "%s\x00%s\x00%.3f\x00", c.scope, req.SchemaName, req.Temperature)
	hash.Write([]byte(req.Prompt))
	hash.Write([]byte("\x00"))
	hash.Write(req.Schema)

	return filepath.Join(c.dir, hex.EncodeToString(hash.Sum(nil))+".json")
}
