package storage

import (
	"context"
	"fmt"
	"io"

	"treinai_backend/internal/config"
)

// Storage abstracts where uploaded photos live. Implementations must be
// safe for concurrent use: photo comparisons upload both halves at once.
type Storage interface {
	// Save stores the object under key and returns nothing; the key is
	// later fed to GetURL and Delete.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get opens the object for reading. Callers own the closer.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL clients render the photo from.
	GetURL(key string) string
}

// New builds the backend selected by configuration.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
