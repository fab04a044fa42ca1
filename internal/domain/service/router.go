package service

import (
	"context"
	"sync"
	"time"

	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/port"
)

// Metric names emitted per routed decision.
const (
	MetricDecisionsTotal  = "loan_decisions_total"
	MetricDecisionLatency = "loan_decision_latency_seconds"
)

// DefaultModelFlag is the feature flag that promotes the candidate evaluator
// to champion.
const DefaultModelFlag = "model_v2_enabled"

// DecisionRouter runs the baseline and candidate evaluators against the same
// application and selects the champion via a feature flag. The other result
// is retained as the shadow for comparison. The router holds no state across
// calls.
type DecisionRouter struct {
	baseline  PolicyEvaluator
	candidate PolicyEvaluator
	flags     port.FeatureFlagProvider
	metrics   port.MetricsCollector
	flagName  string
}

// NewDecisionRouter wires the two policy strategies and the external
// collaborators. Both flags and metrics may be nil: a missing flag provider
// resolves to the baseline, and a missing collector drops the emissions.
func NewDecisionRouter(
	baseline, candidate PolicyEvaluator,
	flags port.FeatureFlagProvider,
	metrics port.MetricsCollector,
	flagName string,
) *DecisionRouter {
	if flagName == "" {
		flagName = DefaultModelFlag
	}
	return &DecisionRouter{
		baseline:  baseline,
		candidate: candidate,
		flags:     flags,
		metrics:   metrics,
		flagName:  flagName,
	}
}

// Route evaluates both policy versions and selects the authoritative one.
// Both evaluators always run, regardless of the flag value: the shadow result
// is the point of the exercise. Evaluators are pure, so they run
// concurrently with no synchronization beyond the join.
func (r *DecisionRouter) Route(ctx context.Context, app model.Application, fctx port.FlagContext) model.RoutingResult {
	start := time.Now()

	var (
		baselineOut  model.DecisionRecord
		candidateOut model.DecisionRecord
		wg           sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		baselineOut = r.baseline.Evaluate(app)
	}()
	go func() {
		defer wg.Done()
		candidateOut = r.candidate.Evaluate(app)
	}()
	wg.Wait()

	useCandidate := false
	if r.flags != nil {
		useCandidate = r.flags.IsEnabled(ctx, r.flagName, fctx)
	}

	result := model.RoutingResult{
		Model:  r.baseline.Version(),
		Chosen: baselineOut,
		Shadow: candidateOut,
	}
	if useCandidate {
		result = model.RoutingResult{
			Model:  r.candidate.Version(),
			Chosen: candidateOut,
			Shadow: baselineOut,
		}
	}

	r.emit(result, time.Since(start))
	return result
}

// emit reports the decision counter and latency histogram. Fire-and-forget:
// the routing result is already final when this runs.
func (r *DecisionRouter) emit(result model.RoutingResult, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.IncrementCounter(MetricDecisionsTotal, map[string]string{
		"model_version": result.Model,
		"decision":      result.Chosen.Decision.String(),
	})
	r.metrics.ObserveLatency(MetricDecisionLatency, map[string]string{
		"model_version": result.Model,
	}, elapsed.Seconds())
}
