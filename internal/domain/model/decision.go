package model

import (
	"time"

	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Decision output values
// ---------------------------------------------------------------------------

// Offer is the credit offer accompanying an APPROVED or COUNTEROFFER
// decision. MonthlyPayment is always recomputed from (ApprovedAmount, APR,
// TermMonths) via the amortization formula, never copied from an
// intermediate estimate.
type Offer struct {
	ApprovedAmount float64
	TermMonths     int
	APR            float64 // decimal fraction, e.g. 0.119 = 11.9%
	OriginationFee float64
	MonthlyPayment float64
}

// Pricing summarises the priced terms for transparency. It is present on
// rejections too, so an applicant can see the rate they were evaluated at.
type Pricing struct {
	APRPercent     float64
	MonthlyPayment float64
	OriginationFee float64
}

// DecisionRecord is the full outcome of one policy evaluation. It is
// constructed once per evaluation, never mutated and never persisted by the
// core. All monetary values are pre-rounded to 2 decimals, percentages to 2,
// ratios and probabilities to 3.
type DecisionRecord struct {
	DecisionID   string
	Timestamp    time.Time
	ModelVersion string
	Decision     valueobject.Decision
	RiskGrade    string

	DTI       float64
	Scorecard *ScorecardMetrics

	Reasons              []string
	AdverseActionReasons []string

	Pricing *Pricing
	Offer   *Offer
}

// ScorecardMetrics carries the outputs only the scorecard policy produces.
// Detailed-underwriting records leave it nil.
type ScorecardMetrics struct {
	PTI                 float64
	ApprovalProbability float64
	MaxAffordableLoan   float64
	CounterofferAmount  float64
}

// RoutingResult packages the authoritative (champion) decision together with
// the shadow decision produced by the other policy version.
type RoutingResult struct {
	Model  string
	Chosen DecisionRecord
	Shadow DecisionRecord
}

// Agreement reports whether champion and shadow reached the same outcome.
func (r RoutingResult) Agreement() bool {
	return r.Chosen.Decision.Equal(r.Shadow.Decision)
}
