package service

import (
	"fmt"
	"math"
	"time"

	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DetailedUnderwriter – policy version "v1" (detailed underwriting)
// ---------------------------------------------------------------------------

// PricingGrid maps a credit score to an APR through five fixed bands.
type PricingGrid struct {
	Excellent float64 // credit >= 760
	Good      float64 // credit >= 700
	Fair      float64 // credit >= 660
	Subprime  float64 // credit >= 620
	DeepSub   float64 // credit < 620
}

// The two published pricing grids. The reduced grid prices every band 0.5pp
// below the standard grid.
var (
	PricingGridStandard = PricingGrid{
		Excellent: 0.060,
		Good:      0.080,
		Fair:      0.110,
		Subprime:  0.150,
		DeepSub:   0.220,
	}
	PricingGridReduced = PricingGrid{
		Excellent: 0.055,
		Good:      0.075,
		Fair:      0.105,
		Subprime:  0.140,
		DeepSub:   0.210,
	}
)

// APR returns the rate for the given credit score.
func (g PricingGrid) APR(creditScore int) float64 {
	switch {
	case creditScore >= 760:
		return g.Excellent
	case creditScore >= 700:
		return g.Good
	case creditScore >= 660:
		return g.Fair
	case creditScore >= 620:
		return g.Subprime
	default:
		return g.DeepSub
	}
}

const (
	dtiLimit          = 0.45
	ptiSoftLimit      = 0.15
	ptiCounterTarget  = 0.13
	counterSearchLow  = 1000.0
	counterIterations = 30
)

// DetailedUnderwriter is the rule-cascade policy: hard eligibility gates,
// grid pricing, affordability, a deterministic manual-review override, and a
// counteroffer search when the payment is tight.
type DetailedUnderwriter struct {
	version string
	grid    PricingGrid
}

// NewDetailedUnderwriter creates the evaluator with the given version tag and
// pricing grid. Production routing uses ("v1", PricingGridStandard).
func NewDetailedUnderwriter(version string, grid PricingGrid) *DetailedUnderwriter {
	return &DetailedUnderwriter{version: version, grid: grid}
}

// Version returns the model version tag.
func (u *DetailedUnderwriter) Version() string { return u.version }

// Evaluate runs the full underwriting cascade. All eligibility checks run so
// rejection reasons accumulate; there is no early exit before the terminal
// decision.
func (u *DetailedUnderwriter) Evaluate(app model.Application) model.DecisionRecord {
	var reasons []string

	// Basic eligibility.
	if app.Age < 18 {
		reasons = append(reasons, "Applicant must be 18+.")
	}
	if app.EmploymentYears < 0 {
		reasons = append(reasons, "Employment years must be non-negative.")
	}
	if app.AnnualIncome <= 0 {
		reasons = append(reasons, "Annual income must be positive.")
	}
	if app.LoanAmount <= 0 || app.LoanTermMonths <= 0 {
		reasons = append(reasons, "Loan amount/term must be positive.")
	}
	if app.CreditScore < 300 || app.CreditScore > 850 {
		reasons = append(reasons, "Credit score must be between 300 and 850.")
	}

	// Policy thresholds.
	if app.EmploymentYears < 1 {
		reasons = append(reasons, "Employment length must be >= 1 year.")
	}
	if app.CreditScore < 580 {
		reasons = append(reasons, "Credit score below minimum (580).")
	}
	if app.AnnualIncome < 25000 {
		reasons = append(reasons, "Annual income below minimum ($25,000).")
	}

	maxAmt := maxLoanAmount(app.AnnualIncome, app.CreditScore)
	if app.LoanAmount > maxAmt {
		reasons = append(reasons, fmt.Sprintf("Loan amount exceeds max allowed ($%.2f).", roundMoney(maxAmt)))
	}

	// Affordability.
	apr := u.grid.APR(app.CreditScore)
	estPayment := MonthlyPayment(app.LoanAmount, apr, app.LoanTermMonths)
	monthlyIncome := app.MonthlyIncome()

	dti := 1.0
	if monthlyIncome > 0 {
		dti = (app.MonthlyDebtPayments + app.HousingPayment + estPayment) / monthlyIncome
	}
	if dti > dtiLimit {
		reasons = append(reasons, fmt.Sprintf("DTI too high (%.2f > %.2f).", dti, dtiLimit))
	}

	rec := model.DecisionRecord{
		DecisionID:   app.DecisionID(),
		Timestamp:    time.Now().UTC(),
		ModelVersion: u.version,
		RiskGrade:    detailedRiskGrade(app.CreditScore, dti),
		DTI:          roundRatio(dti),
	}

	// Manual-review override: only when no reason has accumulated, and it
	// short-circuits past every pricing-derived reason.
	if len(reasons) == 0 && manualReviewNeeded(app) {
		rec.Decision = valueobject.DecisionRefer
		rec.Reasons = []string{"Application requires manual review."}
		return rec
	}

	if len(reasons) > 0 {
		rec.Decision = valueobject.DecisionRejected
		rec.Reasons = reasons
		rec.AdverseActionReasons = MapAdverseActionReasons(reasons)
		rec.Pricing = &model.Pricing{
			APRPercent:     roundPercent(apr * 100),
			MonthlyPayment: roundMoney(estPayment),
		}
		return rec
	}

	// Approve, or counteroffer a smaller amount when the payment is tight.
	pti := estPayment / monthlyIncome
	approvedAmount := app.LoanAmount

	if pti > ptiSoftLimit {
		approvedAmount = roundMoney(u.counterofferAmount(app, monthlyIncome*ptiCounterTarget, apr))
	}

	fee := roundMoney(math.Max(99.0, math.Min(app.LoanAmount*0.02, 499.0)))
	finalPayment := roundMoney(MonthlyPayment(approvedAmount, apr, app.LoanTermMonths))

	rec.Decision = valueobject.DecisionApproved
	if approvedAmount != app.LoanAmount {
		rec.Decision = valueobject.DecisionCounteroffer
	}
	rec.Pricing = &model.Pricing{
		APRPercent:     roundPercent(apr * 100),
		MonthlyPayment: finalPayment,
		OriginationFee: fee,
	}
	rec.Offer = &model.Offer{
		ApprovedAmount: approvedAmount,
		TermMonths:     app.LoanTermMonths,
		APR:            apr,
		OriginationFee: fee,
		MonthlyPayment: finalPayment,
	}
	return rec
}

// counterofferAmount back-solves the largest principal whose payment stays at
// or below the target. The search runs a fixed 30 iterations regardless of
// input so results are bit-reproducible.
func (u *DetailedUnderwriter) counterofferAmount(app model.Application, targetPayment, apr float64) float64 {
	lo, hi := counterSearchLow, app.LoanAmount
	for i := 0; i < counterIterations; i++ {
		mid := (lo + hi) / 2.0
		if MonthlyPayment(mid, apr, app.LoanTermMonths) > targetPayment {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// maxLoanAmount is the income-based soft cap, scaled down by credit tier.
func maxLoanAmount(income float64, creditScore int) float64 {
	base := math.Max(2000.0, math.Min(50000.0, income*0.8))
	switch {
	case creditScore >= 760:
		return base
	case creditScore >= 700:
		return base * 0.90
	case creditScore >= 660:
		return base * 0.75
	case creditScore >= 620:
		return base * 0.60
	default:
		return base * 0.40
	}
}

// detailedRiskGrade assigns a letter grade from the credit score and DTI.
func detailedRiskGrade(creditScore int, dti float64) string {
	switch {
	case creditScore >= 760 && dti <= 0.35:
		return "A"
	case creditScore >= 700 && dti <= 0.40:
		return "B"
	case creditScore >= 660 && dti <= 0.43:
		return "C"
	case creditScore >= 620 && dti <= 0.45:
		return "D"
	default:
		return "E"
	}
}

// manualReviewNeeded is the deterministic referral trigger: large amounts
// from young applicants, or sizeable amounts on weak credit.
func manualReviewNeeded(app model.Application) bool {
	return (app.LoanAmount >= 35000 && app.Age < 23) ||
		(app.CreditScore < 600 && app.LoanAmount >= 15000)
}
