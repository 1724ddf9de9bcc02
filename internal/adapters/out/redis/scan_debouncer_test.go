package redis_test

import (
	"log/slog"
	"testing"
	"time"

	bookredis "bookdesk/internal/adapters/out/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func TestScanDebouncer_SeenRecently(t *testing.T) {
	server := miniredis.RunT(t)
	client := bookredis.NewClient(server.Addr())
	t.Cleanup(func() { _ = client.Close() })

	d := bookredis.NewScanDebouncer(client, 3*time.Second, slog.New(slog.DiscardHandler))
	ctx := t.Context()

	assert.False(t, d.SeenRecently(ctx, "op-1", "code-a"), "first scan")
	assert.True(t, d.SeenRecently(ctx, "op-1", "code-a"), "same frame burst")
	assert.False(t, d.SeenRecently(ctx, "op-2", "code-a"), "other operator")
	assert.False(t, d.SeenRecently(ctx, "op-1", "code-b"), "other code")

	server.FastForward(3 * time.Second)
	assert.False(t, d.SeenRecently(ctx, "op-1", "code-a"), "window elapsed")
}

func TestScanDebouncer_RedisDownIsNotARepeat(t *testing.T) {
	server := miniredis.RunT(t)
	client := bookredis.NewClient(server.Addr())
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	d := bookredis.NewScanDebouncer(client, 0, slog.New(slog.DiscardHandler))
	assert.False(t, d.SeenRecently(t.Context(), "op-1", "code-a"))
	assert.False(t, d.SeenRecently(t.Context(), "op-1", "code-a"))
}

func TestNopScanDebouncer(t *testing.T) {
	assert.False(t, bookredis.NopScanDebouncer{}.SeenRecently(t.Context(), "op", "code"))
}
