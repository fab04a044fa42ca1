package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/service"
	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

func newScorecard() *service.ScorecardModel {
	return service.NewScorecardModel("v2")
}

func TestScorecardApproves(t *testing.T) {
	app := model.Application{
		Email:           "prime@example.com",
		AnnualIncome:    120_000,
		CreditScore:     800,
		LoanAmount:      10_000,
		LoanTermMonths:  36,
		EmploymentYears: 10,
		Age:             30,
	}

	rec := newScorecard().Evaluate(app)

	assert.Equal(t, valueobject.DecisionApproved, rec.Decision)
	assert.Equal(t, "v2", rec.ModelVersion)
	assert.Equal(t, "A", rec.RiskGrade)
	assert.Empty(t, rec.Reasons)
	assert.Empty(t, rec.AdverseActionReasons)

	require.NotNil(t, rec.Scorecard)
	assert.InDelta(t, 0.979, rec.Scorecard.ApprovalProbability, 0.005)
	assert.InDelta(t, 0.030, rec.Scorecard.PTI, 0.001)
	assert.InDelta(t, 59_611, rec.Scorecard.MaxAffordableLoan, 25)
	assert.Zero(t, rec.Scorecard.CounterofferAmount)

	require.NotNil(t, rec.Pricing)
	assert.Equal(t, 5.5, rec.Pricing.APRPercent)

	require.NotNil(t, rec.Offer)
	assert.Equal(t, 10_000.0, rec.Offer.ApprovedAmount)
	assert.Equal(t, 36, rec.Offer.TermMonths)
	assert.InDelta(t, 302.0, rec.Offer.MonthlyPayment, 0.5)
	assert.Zero(t, rec.Offer.OriginationFee)
}

func TestScorecardRoutesMidBandToManualReview(t *testing.T) {
	app := model.Application{
		Email:               "midband@example.com",
		AnnualIncome:        90_000,
		CreditScore:         780,
		MonthlyDebtPayments: 800,
		LoanAmount:          20_000,
		LoanTermMonths:      48,
		EmploymentYears:     3,
		Age:                 30,
	}

	rec := newScorecard().Evaluate(app)

	assert.Equal(t, valueobject.DecisionManualReview, rec.Decision)
	assert.Equal(t, "C", rec.RiskGrade)
	assert.Empty(t, rec.Reasons)
	assert.Nil(t, rec.Offer)

	require.NotNil(t, rec.Scorecard)
	assert.InDelta(t, 0.671, rec.Scorecard.ApprovalProbability, 0.005)
	assert.Zero(t, rec.Scorecard.CounterofferAmount)
}

func TestScorecardCounteroffersUnaffordableRequest(t *testing.T) {
	app := model.Application{
		Email:               "stretched@example.com",
		AnnualIncome:        60_000,
		CreditScore:         700,
		MonthlyDebtPayments: 1_000,
		LoanAmount:          90_000,
		LoanTermMonths:      60,
		EmploymentYears:     4,
		Age:                 30,
	}

	rec := newScorecard().Evaluate(app)

	assert.Equal(t, valueobject.DecisionManualReview, rec.Decision)
	assert.Contains(t, rec.Reasons, "Requested amount exceeds max affordable loan.")
	assert.Equal(t, "E", rec.RiskGrade)
	assert.Nil(t, rec.Offer)

	require.NotNil(t, rec.Scorecard)
	assert.InDelta(t, 44_492, rec.Scorecard.CounterofferAmount, 5)
	assert.Equal(t, rec.Scorecard.MaxAffordableLoan, rec.Scorecard.CounterofferAmount)
	assert.Less(t, rec.Scorecard.CounterofferAmount, app.LoanAmount)
}

func TestScorecardRejectsLowProbability(t *testing.T) {
	app := model.Application{
		Email:               "thin-file@example.com",
		AnnualIncome:        40_000,
		CreditScore:         570,
		MonthlyDebtPayments: 1_200,
		LoanAmount:          3_000,
		LoanTermMonths:      36,
		EmploymentYears:     0.3,
		Age:                 20,
	}

	rec := newScorecard().Evaluate(app)

	assert.Equal(t, valueobject.DecisionRejected, rec.Decision)
	assert.Equal(t, "E", rec.RiskGrade)
	assert.Equal(t, []string{
		"Limited employment history.",
		"Subprime credit band (higher risk).",
	}, rec.Reasons)
	assert.Empty(t, rec.AdverseActionReasons)
	assert.Nil(t, rec.Offer)

	require.NotNil(t, rec.Scorecard)
	assert.InDelta(t, 0.032, rec.Scorecard.ApprovalProbability, 0.003)
}

func TestScorecardAccumulatesAllHardStops(t *testing.T) {
	app := model.Application{
		Email:          "broken@example.com",
		AnnualIncome:   0,
		CreditScore:    500,
		LoanAmount:     500,
		LoanTermMonths: 6,
		Age:            17,
	}

	rec := newScorecard().Evaluate(app)

	require.Equal(t, valueobject.DecisionRejected, rec.Decision)
	assert.Equal(t, []string{
		"Applicant must be 18+.",
		"Income must be greater than $0.",
		"Credit score below minimum (560).",
		"Term must be 12-84 months.",
		"Loan amount must be $1000-$100000.",
	}, rec.Reasons)

	assert.Equal(t, "E", rec.RiskGrade)
	assert.Equal(t, 1.0, rec.DTI)

	require.NotNil(t, rec.Scorecard)
	assert.Equal(t, 1.0, rec.Scorecard.PTI)
	assert.Zero(t, rec.Scorecard.ApprovalProbability)

	require.NotNil(t, rec.Pricing)
	assert.Equal(t, 21.9, rec.Pricing.APRPercent)
	assert.Nil(t, rec.Offer)
}

func TestScorecardMonotonicInCreditScore(t *testing.T) {
	app := model.Application{
		Email:               "sweep@example.com",
		AnnualIncome:        60_000,
		CreditScore:         560,
		MonthlyDebtPayments: 300,
		LoanAmount:          10_000,
		LoanTermMonths:      36,
		EmploymentYears:     3,
		Age:                 30,
	}

	sc := newScorecard()
	prevProb := -1.0
	prevAPR := 1.0

	for score := 560; score <= 850; score += 10 {
		app.CreditScore = score
		rec := sc.Evaluate(app)

		require.NotNil(t, rec.Scorecard, "score %d", score)
		assert.GreaterOrEqual(t, rec.Scorecard.ApprovalProbability, prevProb,
			"probability dropped at score %d", score)
		assert.LessOrEqual(t, rec.Pricing.APRPercent, prevAPR*100+1e-9,
			"APR rose at score %d", score)

		prevProb = rec.Scorecard.ApprovalProbability
		prevAPR = rec.Pricing.APRPercent / 100
	}
}
