package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Amortization math
// ---------------------------------------------------------------------------

// MonthlyPayment computes the fixed monthly payment for a loan using the
// standard amortization formula:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (aprDecimal / 12) and n is the term in months.
// A non-positive term yields 0; a zero APR falls back to a straight-line
// split so the rate term never divides by zero.
func MonthlyPayment(principal, aprDecimal float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := aprDecimal / 12.0
	if r == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return principal * (r * factor) / (factor - 1)
}

// PrincipalFromPayment is the exact algebraic inverse of MonthlyPayment: the
// largest principal whose fixed payment equals the given payment at the given
// rate and term. Non-positive term or payment yields 0; a zero APR inverts
// the straight-line split; a degenerate zero denominator yields 0.
func PrincipalFromPayment(payment, aprDecimal float64, months int) float64 {
	if months <= 0 || payment <= 0 {
		return 0
	}
	r := aprDecimal / 12.0
	if r == 0 {
		return payment * float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	denom := r * factor
	if denom == 0 {
		return 0
	}
	return payment * (factor - 1) / denom
}

// ---------------------------------------------------------------------------
// Rounding helpers
//
// The core owns all presentation rounding: money and percentages to 2
// decimals, ratios and probabilities to 3. Downstream layers serialise these
// values as-is.
// ---------------------------------------------------------------------------

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func roundPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func roundRatio(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}
