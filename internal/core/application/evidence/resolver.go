// Package evidence turns stored payment-evidence references into URLs an
// operator can open, and stores new evidence uploads.
package evidence

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bookdesk/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultURLTTL is how long a signed evidence URL stays valid.
	DefaultURLTTL = time.Hour

	resolveConcurrency = 8
)

// Resolver signs object-storage keys. References that are already URLs pass
// through unchanged.
type Resolver struct {
	storage ports.ObjectStorage
	ttl     time.Duration
	logger  *slog.Logger
}

func NewResolver(storage ports.ObjectStorage, ttl time.Duration, logger *slog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &Resolver{
		storage: storage,
		ttl:     ttl,
		logger:  logger.With("component", "evidence_resolver"),
	}
}

// IsURL reports whether ref needs no signing.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "/")
}

// Resolve never fails: when signing does not work the raw key is returned
// and a warning is logged.
func (r *Resolver) Resolve(ctx context.Context, ref string) string {
	if ref == "" || IsURL(ref) {
		return ref
	}

	url, err := r.storage.SignURL(ctx, ref, r.ttl)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to sign evidence url", "key", ref, "error", err)
		return ref
	}
	return url
}

// ResolveAll resolves refs concurrently. The result is index-aligned with refs.
func (r *Resolver) ResolveAll(ctx context.Context, refs []string) []string {
	resolved := make([]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			resolved[i] = r.Resolve(gctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}
