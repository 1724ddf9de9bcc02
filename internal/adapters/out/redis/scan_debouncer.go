// Package redis drops repeated QR scans using short-lived Redis keys.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultWindow is how long a scan suppresses the same code from the same operator.
const DefaultWindow = 3 * time.Second

const keyPrefix = "bookdesk:scan"

type ScanDebouncer struct {
	client *redis.Client
	window time.Duration
	logger *slog.Logger
}

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

func NewScanDebouncer(client *redis.Client, window time.Duration, logger *slog.Logger) *ScanDebouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &ScanDebouncer{
		client: client,
		window: window,
		logger: logger.With("component", "scan_debouncer"),
	}
}

// SeenRecently sets the scan key with NX and a TTL of the window. The scan is
// a repeat when the key already existed. Redis errors count as "not a repeat".
func (d *ScanDebouncer) SeenRecently(ctx context.Context, operatorID, code string) bool {
	key := fmt.Sprintf("%s:%s:%s", keyPrefix, operatorID, code)

	first, err := d.client.SetNX(ctx, key, 1, d.window).Result()
	if err != nil {
		d.logger.WarnContext(ctx, "scan debounce unavailable", "error", err)
		return false
	}
	return !first
}

// NopScanDebouncer never reports a repeat. It is used when no Redis is configured.
type NopScanDebouncer struct{}

func (NopScanDebouncer) SeenRecently(context.Context, string, string) bool {
	return false
}
