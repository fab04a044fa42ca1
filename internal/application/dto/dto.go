package dto

import "time"

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EvaluateApplicationRequest carries a full loan application. Numeric fields
// arrive pre-parsed; malformed payloads are rejected by the codec before the
// use case runs.
type EvaluateApplicationRequest struct {
	CallerID    string `json:"caller_id,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	State       string `json:"state,omitempty"`
	LoanPurpose string `json:"loan_purpose,omitempty"`

	AnnualIncome        float64 `json:"annual_income"`
	CreditScore         int     `json:"credit_score"`
	MonthlyDebtPayments float64 `json:"monthly_debt_payments"`
	HousingPayment      float64 `json:"housing_payment"`
	LoanAmount          float64 `json:"loan_amount"`
	LoanTermMonths      int     `json:"loan_term_months"`
	EmploymentYears     float64 `json:"employment_years"`
	Age                 int     `json:"age"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// OfferResponse is the external representation of a credit offer.
type OfferResponse struct {
	ApprovedAmount          float64 `json:"approved_amount"`
	TermMonths              int     `json:"term_months"`
	APRPercent              float64 `json:"apr_percent"`
	OriginationFee          float64 `json:"origination_fee"`
	EstimatedMonthlyPayment float64 `json:"estimated_monthly_payment"`
}

// PricingResponse summarises the priced terms.
type PricingResponse struct {
	APRPercent     float64  `json:"apr_percent"`
	MonthlyPayment float64  `json:"monthly_payment"`
	OriginationFee *float64 `json:"origination_fee,omitempty"`
}

// DecisionResponse is the external representation of one policy decision.
// All numeric values are pre-rounded by the core; this layer never re-rounds.
type DecisionResponse struct {
	DecisionID   string    `json:"decision_id"`
	TimestampUTC time.Time `json:"timestamp_utc"`
	ModelVersion string    `json:"model_version"`
	Decision     string    `json:"decision"`
	RiskGrade    string    `json:"risk_grade"`

	DTI                    float64  `json:"dti"`
	PTI                    *float64 `json:"pti,omitempty"`
	ApprovalProbability    *float64 `json:"approval_probability,omitempty"`
	MaxAffordableLoan      *float64 `json:"max_affordable_loan,omitempty"`
	CounterofferLoanAmount *float64 `json:"counteroffer_loan_amount,omitempty"`

	Reasons              []string `json:"reasons"`
	AdverseActionReasons []string `json:"adverse_action_reasons,omitempty"`

	Pricing *PricingResponse `json:"pricing,omitempty"`
	Offer   *OfferResponse   `json:"offer,omitempty"`
}

// RoutingResultResponse mirrors the champion/shadow selection.
type RoutingResultResponse struct {
	Model    string           `json:"model"`
	Decision DecisionResponse `json:"decision"`
	Shadow   DecisionResponse `json:"shadow"`
}
