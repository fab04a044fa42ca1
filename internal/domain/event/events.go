package event

// ---------------------------------------------------------------------------
// Underwriting events
// ---------------------------------------------------------------------------

// DecisionEvaluated is raised after both policy versions have run and a
// champion was selected. It feeds the shadow-comparison monitoring stream.
type DecisionEvaluated struct {
	BaseEvent
	ChosenModel    string `json:"chosen_model"`
	ChosenDecision string `json:"chosen_decision"`
	ShadowModel    string `json:"shadow_model"`
	ShadowDecision string `json:"shadow_decision"`
	RiskGrade      string `json:"risk_grade"`
	Agreement      bool   `json:"agreement"`
}

// NewDecisionEvaluated creates a DecisionEvaluated event keyed by the
// deterministic decision id.
func NewDecisionEvaluated(
	decisionID, chosenModel, chosenDecision, shadowModel, shadowDecision, riskGrade string,
	agreement bool,
) DecisionEvaluated {
	return DecisionEvaluated{
		BaseEvent:      NewBaseEvent("underwriting.decision.evaluated", decisionID, "Decision"),
		ChosenModel:    chosenModel,
		ChosenDecision: chosenDecision,
		ShadowModel:    shadowModel,
		ShadowDecision: shadowDecision,
		RiskGrade:      riskGrade,
		Agreement:      agreement,
	}
}
