package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Decision – immutable value object
// ---------------------------------------------------------------------------

// Decision represents the terminal outcome of a policy evaluation. Every
// outcome is a first-class result, never an error: a REJECTED application is
// a successful evaluation.
type Decision struct {
	value string
}

const (
	decisionApproved     = "APPROVED"
	decisionCounteroffer = "COUNTEROFFER"
	decisionRefer        = "REFER"
	decisionManualReview = "MANUAL_REVIEW"
	decisionRejected     = "REJECTED"
)

var (
	DecisionApproved     = Decision{value: decisionApproved}
	DecisionCounteroffer = Decision{value: decisionCounteroffer}
	DecisionRefer        = Decision{value: decisionRefer}
	DecisionManualReview = Decision{value: decisionManualReview}
	DecisionRejected     = Decision{value: decisionRejected}
)

var validDecisions = map[string]Decision{
	decisionApproved:     DecisionApproved,
	decisionCounteroffer: DecisionCounteroffer,
	decisionRefer:        DecisionRefer,
	decisionManualReview: DecisionManualReview,
	decisionRejected:     DecisionRejected,
}

// NewDecision creates a Decision from a raw string.
func NewDecision(s string) (Decision, error) {
	v, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision: %q", s)
	}
	return v, nil
}

// String returns the string representation of the decision.
func (d Decision) String() string { return d.value }

// IsZero returns true if the decision has not been initialised.
func (d Decision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions carry the same value.
func (d Decision) Equal(other Decision) bool { return d.value == other.value }

// CarriesOffer reports whether this outcome is accompanied by an Offer.
func (d Decision) CarriesOffer() bool {
	return d.value == decisionApproved || d.value == decisionCounteroffer
}

// MarshalJSON encodes the decision as its string value.
func (d Decision) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.value + `"`), nil
}

// UnmarshalJSON decodes a decision from its string value.
func (d *Decision) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid decision literal: %s", data)
	}
	v, err := NewDecision(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
