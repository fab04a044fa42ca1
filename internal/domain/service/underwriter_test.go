package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/service"
	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

func newUnderwriter() *service.DetailedUnderwriter {
	return service.NewDetailedUnderwriter("v1", service.PricingGridStandard)
}

func solidApplication() model.Application {
	return model.Application{
		FullName:            "Jordan Reyes",
		Email:               "jordan.reyes@example.com",
		Phone:               "555-0182",
		State:               "CO",
		LoanPurpose:         "debt_consolidation",
		AnnualIncome:        60_000,
		CreditScore:         720,
		MonthlyDebtPayments: 300,
		LoanAmount:          20_000,
		LoanTermMonths:      36,
		EmploymentYears:     3,
		Age:                 30,
	}
}

func TestDetailedUnderwriterApproves(t *testing.T) {
	rec := newUnderwriter().Evaluate(solidApplication())

	assert.Equal(t, valueobject.DecisionApproved, rec.Decision)
	assert.Equal(t, "v1", rec.ModelVersion)
	assert.Equal(t, "B", rec.RiskGrade)
	assert.Empty(t, rec.Reasons)
	assert.Empty(t, rec.AdverseActionReasons)
	assert.Nil(t, rec.Scorecard)
	assert.InDelta(t, 0.185, rec.DTI, 0.0005)

	require.NotNil(t, rec.Pricing)
	assert.Equal(t, 8.0, rec.Pricing.APRPercent)
	assert.InDelta(t, 626.7, rec.Pricing.MonthlyPayment, 0.5)
	assert.Equal(t, 400.0, rec.Pricing.OriginationFee)

	require.NotNil(t, rec.Offer)
	assert.Equal(t, 20_000.0, rec.Offer.ApprovedAmount)
	assert.Equal(t, 36, rec.Offer.TermMonths)
	assert.Equal(t, rec.Pricing.MonthlyPayment, rec.Offer.MonthlyPayment)
}

func TestDetailedUnderwriterCounteroffers(t *testing.T) {
	app := solidApplication()
	app.AnnualIncome = 40_000
	app.CreditScore = 700
	app.MonthlyDebtPayments = 200
	app.LoanAmount = 25_000

	rec := newUnderwriter().Evaluate(app)

	require.Equal(t, valueobject.DecisionCounteroffer, rec.Decision)
	require.NotNil(t, rec.Offer)

	assert.Less(t, rec.Offer.ApprovedAmount, app.LoanAmount)
	assert.InDelta(t, 13_830, rec.Offer.ApprovedAmount, 5)

	// The reduced amount lands the payment at the counteroffer target.
	monthlyIncome := app.AnnualIncome / 12.0
	pti := rec.Offer.MonthlyPayment / monthlyIncome
	assert.LessOrEqual(t, pti, 0.13+0.001)
	assert.Greater(t, pti, 0.125)

	// Origination fee is clamped and derived from the requested amount.
	assert.Equal(t, 499.0, rec.Offer.OriginationFee)
}

func TestDetailedUnderwriterRefersForManualReview(t *testing.T) {
	app := solidApplication()
	app.Age = 20
	app.AnnualIncome = 90_000
	app.CreditScore = 780
	app.LoanAmount = 40_000
	app.LoanTermMonths = 60
	app.MonthlyDebtPayments = 0
	app.EmploymentYears = 5

	rec := newUnderwriter().Evaluate(app)

	assert.Equal(t, valueobject.DecisionRefer, rec.Decision)
	assert.Equal(t, []string{"Application requires manual review."}, rec.Reasons)
	assert.Empty(t, rec.AdverseActionReasons)

	// The referral short-circuits pricing entirely.
	assert.Nil(t, rec.Pricing)
	assert.Nil(t, rec.Offer)
	assert.Equal(t, "A", rec.RiskGrade)
}

func TestDetailedUnderwriterAccumulatesAllHardStops(t *testing.T) {
	app := model.Application{
		Email:           "broken@example.com",
		AnnualIncome:    0,
		CreditScore:     200,
		LoanAmount:      -5,
		LoanTermMonths:  0,
		EmploymentYears: -1,
		Age:             17,
	}

	rec := newUnderwriter().Evaluate(app)

	require.Equal(t, valueobject.DecisionRejected, rec.Decision)
	assert.Equal(t, []string{
		"Applicant must be 18+.",
		"Employment years must be non-negative.",
		"Annual income must be positive.",
		"Loan amount/term must be positive.",
		"Credit score must be between 300 and 850.",
		"Employment length must be >= 1 year.",
		"Credit score below minimum (580).",
		"Annual income below minimum ($25,000).",
		"DTI too high (1.00 > 0.45).",
	}, rec.Reasons)

	// With zero income the ratio is pinned, not divided.
	assert.Equal(t, 1.0, rec.DTI)
	assert.Equal(t, "E", rec.RiskGrade)

	// Adverse-action categories are bounded and de-duplicated.
	assert.Equal(t, []string{
		"Applicant must be 18+.",
		"Insufficient employment history",
		"Insufficient income for requested credit",
		"Requested amount exceeds policy limits",
	}, rec.AdverseActionReasons)

	// Rejections still carry indicative pricing.
	require.NotNil(t, rec.Pricing)
	assert.Equal(t, 22.0, rec.Pricing.APRPercent)
	assert.Nil(t, rec.Offer)
}

func TestDetailedUnderwriterRejectsOversizedLoan(t *testing.T) {
	app := solidApplication()
	app.AnnualIncome = 30_000
	app.CreditScore = 620

	rec := newUnderwriter().Evaluate(app)

	require.Equal(t, valueobject.DecisionRejected, rec.Decision)
	assert.Contains(t, rec.Reasons, "Loan amount exceeds max allowed ($14400.00).")
	assert.Contains(t, rec.AdverseActionReasons, "Requested amount exceeds policy limits")
}

func TestPricingGrids(t *testing.T) {
	t.Run("APR never increases with credit score", func(t *testing.T) {
		prev := service.PricingGridStandard.APR(300)
		for score := 310; score <= 850; score += 10 {
			apr := service.PricingGridStandard.APR(score)
			assert.LessOrEqual(t, apr, prev, "score %d priced above score %d", score, score-10)
			prev = apr
		}
	})

	t.Run("reduced grid is half a point below standard in every band", func(t *testing.T) {
		for _, score := range []int{500, 630, 680, 720, 800} {
			t.Run(fmt.Sprintf("score=%d", score), func(t *testing.T) {
				std := service.PricingGridStandard.APR(score)
				red := service.PricingGridReduced.APR(score)
				assert.InDelta(t, 0.005, std-red, 1e-12)
			})
		}
	})
}

func TestDetailedRiskGradeImprovesWithCredit(t *testing.T) {
	rank := map[string]int{"A": 0, "B": 1, "C": 2, "D": 3, "E": 4}
	uw := newUnderwriter()

	app := solidApplication()
	app.LoanAmount = 10_000
	app.MonthlyDebtPayments = 200

	prev := rank["E"]
	for score := 580; score <= 850; score += 10 {
		app.CreditScore = score
		rec := uw.Evaluate(app)
		got := rank[rec.RiskGrade]
		assert.LessOrEqual(t, got, prev, "grade worsened at score %d", score)
		prev = got
	}
}
