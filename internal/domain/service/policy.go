package service

import (
	"github.com/meridianbank/underwriting-service/internal/domain/model"
)

// PolicyEvaluator is the strategy interface for one underwriting policy
// version. Implementations are pure: they share no state, never fail, and
// may safely run concurrently against the same application.
type PolicyEvaluator interface {
	// Version returns the model version tag carried on every DecisionRecord
	// this evaluator produces.
	Version() string
	// Evaluate maps an application to a decision. Every outcome, including
	// rejection, is a value; policy evaluation has no error path.
	Evaluate(app model.Application) model.DecisionRecord
}
