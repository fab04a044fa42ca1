package service

import (
	"fmt"
	"math"
	"time"

	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScorecardModel – policy version "v2" (scorecard)
// ---------------------------------------------------------------------------

const (
	scorecardDTICap = 0.45
	scorecardPTICap = 0.18

	scorecardMinLoan = 1_000.0
	scorecardMaxLoan = 100_000.0
	scorecardMinTerm = 12
	scorecardMaxTerm = 84

	// Counteroffer tolerance: a request within 2% of the affordability
	// ceiling is not countered.
	affordabilitySlack = 1.02
)

// Scorecard coefficients. These are fixed, hand-calibrated constants, not a
// trained model; they must not drift between releases because the shadow
// comparison depends on reproducible outputs.
const (
	coefIntercept   = -1.9
	coefCredit      = 0.007    // per point above 650
	coefIncome      = 0.000012 // per dollar above 50,000
	coefEmployment  = 0.22     // per year above 2
	coefDTI         = -6.0     // per unit above 0.35
	coefPTI         = -2.8     // per unit above 0.16
	coefYoungAge    = -0.5     // applicant under 21
	coefLoanAmount  = -0.000018
	creditPivot     = 650.0
	incomePivot     = 50_000.0
	employmentPivot = 2.0
	dtiPivot        = 0.35
	ptiPivot        = 0.16
)

// ScorecardModel is the logistic-scorecard policy: a small hard-stop set,
// a distinct pricing grid, an affordability ceiling with inverse
// amortization, and a sigmoid risk score over fixed linear terms.
type ScorecardModel struct {
	version string
}

// NewScorecardModel creates the evaluator with the given version tag.
// Production routing uses "v2".
func NewScorecardModel(version string) *ScorecardModel {
	return &ScorecardModel{version: version}
}

// Version returns the model version tag.
func (m *ScorecardModel) Version() string { return m.version }

// scorecardAPR is the scorecard pricing grid. Its bands and constants are
// deliberately distinct from the detailed underwriter's grids.
func scorecardAPR(creditScore int) float64 {
	switch {
	case creditScore >= 780:
		return 0.055
	case creditScore >= 740:
		return 0.065
	case creditScore >= 700:
		return 0.079
	case creditScore >= 660:
		return 0.105
	case creditScore >= 620:
		return 0.139
	case creditScore >= 580:
		return 0.179
	default:
		return 0.219
	}
}

// Evaluate runs the scorecard. Hard-stop failures reject immediately with
// grade E and probability 0 — unlike the detailed underwriter there is no
// manual-review short-circuit.
func (m *ScorecardModel) Evaluate(app model.Application) model.DecisionRecord {
	var reasons []string

	// Hard stops. All of them run so reasons accumulate.
	if app.Age < 18 {
		reasons = append(reasons, "Applicant must be 18+.")
	}
	if app.AnnualIncome <= 0 {
		reasons = append(reasons, "Income must be greater than $0.")
	}
	if app.CreditScore < 560 {
		reasons = append(reasons, "Credit score below minimum (560).")
	}
	if app.LoanTermMonths < scorecardMinTerm || app.LoanTermMonths > scorecardMaxTerm {
		reasons = append(reasons, fmt.Sprintf("Term must be %d-%d months.", scorecardMinTerm, scorecardMaxTerm))
	}
	if app.LoanAmount < scorecardMinLoan || app.LoanAmount > scorecardMaxLoan {
		reasons = append(reasons, fmt.Sprintf("Loan amount must be $%.0f-$%.0f.", scorecardMinLoan, scorecardMaxLoan))
	}

	apr := scorecardAPR(app.CreditScore)
	estPayment := MonthlyPayment(app.LoanAmount, apr, app.LoanTermMonths)
	monthlyIncome := app.MonthlyIncome()

	dti, pti := 1.0, 1.0
	if monthlyIncome > 0 {
		dti = (app.MonthlyDebtPayments + estPayment) / monthlyIncome
		pti = estPayment / monthlyIncome
	}

	metrics := &model.ScorecardMetrics{PTI: roundRatio(pti)}
	rec := model.DecisionRecord{
		DecisionID:   app.DecisionID(),
		Timestamp:    time.Now().UTC(),
		ModelVersion: m.version,
		DTI:          roundRatio(dti),
		Scorecard:    metrics,
		Pricing: &model.Pricing{
			APRPercent:     roundPercent(apr * 100),
			MonthlyPayment: roundMoney(estPayment),
		},
	}

	if len(reasons) > 0 {
		rec.Decision = valueobject.DecisionRejected
		rec.RiskGrade = "E"
		rec.Reasons = reasons
		return rec
	}

	// Affordability ceiling, inverse-amortized into a maximum loan.
	maxByPTI := monthlyIncome * scorecardPTICap
	maxByDTI := monthlyIncome*scorecardDTICap - app.MonthlyDebtPayments
	maxAffordablePayment := math.Max(0, math.Min(maxByPTI, maxByDTI))
	maxAffordableLoan := PrincipalFromPayment(maxAffordablePayment, apr, app.LoanTermMonths)
	metrics.MaxAffordableLoan = math.Round(maxAffordableLoan)

	// Risk score.
	z := coefIntercept +
		coefCredit*(float64(app.CreditScore)-creditPivot) +
		coefIncome*(app.AnnualIncome-incomePivot) +
		coefEmployment*(app.EmploymentYears-employmentPivot) +
		coefDTI*(dti-dtiPivot) +
		coefPTI*(pti-ptiPivot) +
		coefLoanAmount*app.LoanAmount
	if app.Age < 21 {
		z += coefYoungAge
	}
	probability := sigmoid(z)

	metrics.ApprovalProbability = roundRatio(probability)
	rec.RiskGrade = scorecardRiskGrade(probability)

	// Soft reasons: explanatory only, never blocking.
	if dti > scorecardDTICap {
		reasons = append(reasons, "DTI exceeds affordability cap.")
	}
	if pti > scorecardPTICap {
		reasons = append(reasons, "Payment-to-income exceeds affordability cap.")
	}
	if app.EmploymentYears < 0.5 {
		reasons = append(reasons, "Limited employment history.")
	}
	if app.CreditScore < 620 {
		reasons = append(reasons, "Subprime credit band (higher risk).")
	}

	// Counteroffer overrides the probability bands when the request clears
	// the affordability ceiling by more than the slack.
	if maxAffordableLoan > 0 && app.LoanAmount > maxAffordableLoan*affordabilitySlack {
		reasons = append(reasons, "Requested amount exceeds max affordable loan.")
		rec.Decision = valueobject.DecisionManualReview
		metrics.CounterofferAmount = math.Round(maxAffordableLoan)
		rec.Reasons = reasons
		return rec
	}

	switch {
	case probability >= 0.75 && dti <= scorecardDTICap && pti <= scorecardPTICap:
		rec.Decision = valueobject.DecisionApproved
		rec.Offer = &model.Offer{
			ApprovedAmount: roundMoney(app.LoanAmount),
			TermMonths:     app.LoanTermMonths,
			APR:            apr,
			MonthlyPayment: roundMoney(MonthlyPayment(app.LoanAmount, apr, app.LoanTermMonths)),
		}
	case probability >= 0.60:
		rec.Decision = valueobject.DecisionManualReview
	default:
		rec.Decision = valueobject.DecisionRejected
	}
	rec.Reasons = reasons
	return rec
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// scorecardRiskGrade maps approval probability to a letter grade.
func scorecardRiskGrade(p float64) string {
	switch {
	case p >= 0.85:
		return "A"
	case p >= 0.75:
		return "B"
	case p >= 0.65:
		return "C"
	case p >= 0.55:
		return "D"
	default:
		return "E"
	}
}
