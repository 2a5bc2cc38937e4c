package config

import (
	"context"

	"github.com/vk/tunegridgo/internal/model"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from the given paths (files or directories),
	// translates them into the format-agnostic model, normalizes defaults,
	// and validates every run record.
	Load(ctx context.Context, paths ...string) (*model.Manifest, error)
}
