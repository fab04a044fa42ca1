package flags

import (
	"context"

	"github.com/meridianbank/underwriting-service/internal/domain/port"
)

// StaticProvider resolves every flag to a fixed table, falling back to a
// default. It backs deployments without a flag store and keeps tests
// deterministic.
type StaticProvider struct {
	Values  map[string]bool
	Default bool
}

// NewStaticProvider creates a provider with the given fixed values.
func NewStaticProvider(values map[string]bool, defaultValue bool) *StaticProvider {
	return &StaticProvider{Values: values, Default: defaultValue}
}

// IsEnabled returns the fixed value for the flag, or the default.
func (p *StaticProvider) IsEnabled(_ context.Context, flag string, _ port.FlagContext) bool {
	if v, ok := p.Values[flag]; ok {
		return v
	}
	return p.Default
}
