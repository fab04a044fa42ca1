package flags_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianbank/underwriting-service/internal/domain/port"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/flags"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseFlagValue(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "on", "enabled", "yes", " YES "}
	for _, raw := range truthy {
		v, found := flags.ParseFlagValue(raw)
		assert.True(t, found, "raw=%q", raw)
		assert.True(t, v, "raw=%q", raw)
	}

	falsy := []string{"0", "false", "off", "DISABLED", "no"}
	for _, raw := range falsy {
		v, found := flags.ParseFlagValue(raw)
		assert.True(t, found, "raw=%q", raw)
		assert.False(t, v, "raw=%q", raw)
	}

	for _, raw := range []string{"", "maybe", "2", "null"} {
		_, found := flags.ParseFlagValue(raw)
		assert.False(t, found, "raw=%q", raw)
	}
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	fctx := port.FlagContext{UserID: "caller-1"}

	t.Run("returns the configured value", func(t *testing.T) {
		p := flags.NewStaticProvider(map[string]bool{"model_v2_enabled": true}, false)
		assert.True(t, p.IsEnabled(ctx, "model_v2_enabled", fctx))
	})

	t.Run("falls back to the default for unknown flags", func(t *testing.T) {
		p := flags.NewStaticProvider(nil, true)
		assert.True(t, p.IsEnabled(ctx, "anything", fctx))

		p = flags.NewStaticProvider(nil, false)
		assert.False(t, p.IsEnabled(ctx, "anything", fctx))
	})

	t.Run("explicit false beats a true default", func(t *testing.T) {
		p := flags.NewStaticProvider(map[string]bool{"model_v2_enabled": false}, true)
		assert.False(t, p.IsEnabled(ctx, "model_v2_enabled", fctx))
	})
}

func TestRedisProviderFailsOpen(t *testing.T) {
	// No Redis listening at this address: every lookup errors and the
	// provider must fall through to its default without surfacing anything.
	p := flags.NewRedisProvider("127.0.0.1:1", true, discardLogger())
	defer func() { _ = p.Close() }() //nolint:errcheck

	assert.True(t, p.IsEnabled(context.Background(), "model_v2_enabled", port.FlagContext{UserID: "caller-1"}))

	p2 := flags.NewRedisProvider("127.0.0.1:1", false, discardLogger())
	defer func() { _ = p2.Close() }() //nolint:errcheck

	assert.False(t, p2.IsEnabled(context.Background(), "model_v2_enabled", port.FlagContext{}))
}
