package ports

import (
	"context"
	"time"
)

// ObjectStorage stores payment evidence images.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// SignURL returns a time-limited URL granting read access to key.
	SignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
