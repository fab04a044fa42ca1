package flags

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbank/underwriting-service/internal/domain/port"
)

// flagKeyPrefix namespaces flag keys in Redis.
const flagKeyPrefix = "flags:"

// RedisProvider resolves feature flags from Redis keys. It fails open: a
// missing key, an unparseable value or an unreachable server all resolve to
// the configured default, with no retry and no error surfaced to the caller.
type RedisProvider struct {
	client       *redis.Client
	logger       *slog.Logger
	defaultValue bool
}

// NewRedisProvider connects a flag provider to the Redis instance at addr.
func NewRedisProvider(addr string, defaultValue bool, logger *slog.Logger) *RedisProvider {
	return &RedisProvider{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		logger:       logger,
		defaultValue: defaultValue,
	}
}

// IsEnabled resolves the flag for the given context. Per-caller segmentation
// is keyed as flags:<flag>:<user-id> with flags:<flag> as the global value.
func (p *RedisProvider) IsEnabled(ctx context.Context, flag string, fctx port.FlagContext) bool {
	if fctx.UserID != "" {
		if v, ok := p.lookup(ctx, flagKeyPrefix+flag+":"+fctx.UserID); ok {
			return v
		}
	}
	if v, ok := p.lookup(ctx, flagKeyPrefix+flag); ok {
		return v
	}
	return p.defaultValue
}

func (p *RedisProvider) lookup(ctx context.Context, key string) (value, found bool) {
	raw, err := p.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, false
	}
	if err != nil {
		p.logger.DebugContext(ctx, "flag lookup failed, using default", "key", key, "error", err)
		return false, false
	}
	return ParseFlagValue(raw)
}

// Close releases the Redis connection.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

// ParseFlagValue interprets a stored flag value. Unrecognised values report
// found=false so the caller falls through to its default.
func ParseFlagValue(raw string) (value, found bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "enabled", "yes":
		return true, true
	case "0", "false", "off", "disabled", "no":
		return false, true
	default:
		return false, false
	}
}
