// Package storage holds the object store transports an ingestion run can
// upload to. A store only needs to accept a named byte stream under a key.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Metadata travels with an uploaded object.
type Metadata struct {
	ContentType string
	Attributes  map[string]string
}

// ObjectStore is the destination of validated files.
type ObjectStore interface {
	// Put stores the whole body under key. Partial objects left by a failed
	// Put are the destination's concern.
	Put(ctx context.Context, key string, body io.ReadSeeker, meta Metadata) error
	// Location renders key as a URL for logs.
	Location(key string) string
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "s3" (default) or "fs"

	Bucket          string
	Region          string
	Endpoint        string // S3-compatible endpoint, optional
	ForcePathStyle  bool
	AccessKeyID     string // optional; the default AWS credential chain is used when empty
	SecretAccessKey string
	SessionToken    string

	BasePath string // root directory for the fs provider
}

// Provider builds an ObjectStore from Config.
type Provider func(ctx context.Context, cfg Config) (ObjectStore, error)

var providers = map[string]Provider{
	"s3": openS3,
	"fs": openFS,
}

// Open builds the store named by cfg.Provider. No network call is made, so an
// unreachable destination surfaces on the first Put.
func Open(ctx context.Context, cfg Config) (ObjectStore, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = "s3"
	}

	provider, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}

	return provider(ctx, cfg)
}
