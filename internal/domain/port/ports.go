package port

import (
	"context"

	"github.com/meridianbank/underwriting-service/internal/domain/event"
)

// ---------------------------------------------------------------------------
// Collaborator ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// FlagContext carries the per-caller attributes a feature-flag provider may
// segment on. The identifier is supplied by the surrounding application; the
// core neither generates nor stores it.
type FlagContext struct {
	UserID string
}

// FeatureFlagProvider resolves boolean feature flags. Implementations must be
// synchronous and best-effort: on any failure they return their configured
// default rather than an error.
type FeatureFlagProvider interface {
	IsEnabled(ctx context.Context, flag string, fctx FlagContext) bool
}

// MetricsCollector receives the router's observability signals. Emissions are
// fire-and-forget: the routing result must be correct even when the collector
// is a no-op.
type MetricsCollector interface {
	IncrementCounter(name string, labels map[string]string)
	ObserveLatency(name string, labels map[string]string, seconds float64)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
