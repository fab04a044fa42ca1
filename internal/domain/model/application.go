package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Application – immutable input record
// ---------------------------------------------------------------------------

// Application is the loan application as submitted by the caller. It is a
// pure value: evaluators never mutate it and it carries no identity beyond
// its field values.
type Application struct {
	FullName    string
	Email       string
	Phone       string
	State       string
	LoanPurpose string

	AnnualIncome        float64
	CreditScore         int
	MonthlyDebtPayments float64
	HousingPayment      float64
	LoanAmount          float64
	LoanTermMonths      int
	EmploymentYears     float64
	Age                 int
}

// Validate checks the application for caller-side input errors: values that
// no policy can meaningfully evaluate. Policy violations (negative income,
// out-of-range credit score) are NOT validation errors; they surface as
// rejection reasons from the evaluators.
func (a Application) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"annual_income", a.AnnualIncome},
		{"monthly_debt_payments", a.MonthlyDebtPayments},
		{"housing_payment", a.HousingPayment},
		{"loan_amount", a.LoanAmount},
		{"employment_years", a.EmploymentYears},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return valueobject.NewValidationError(f.name, "must be a finite number")
		}
	}
	return nil
}

// MonthlyIncome returns the gross monthly income.
func (a Application) MonthlyIncome() float64 {
	return a.AnnualIncome / 12.0
}

// DecisionID derives a deterministic identifier from a stable subset of
// fields so that identical inputs reproduce identical ids. This is a demo
// reproducibility device, not a security-grade identifier.
func (a Application) DecisionID() string {
	s := fmt.Sprintf("%s|%s|%d|%s",
		a.Email,
		strconv.FormatFloat(a.LoanAmount, 'f', -1, 64),
		a.CreditScore,
		strconv.FormatFloat(a.AnnualIncome, 'f', -1, 64),
	)
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
