package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meridianbank/underwriting-service/internal/application/dto"
	"github.com/meridianbank/underwriting-service/internal/domain/event"
	"github.com/meridianbank/underwriting-service/internal/domain/model"
	"github.com/meridianbank/underwriting-service/internal/domain/port"
	"github.com/meridianbank/underwriting-service/internal/domain/service"
)

// EvaluateApplicationUseCase orchestrates one underwriting call: input
// validation, dual-model routing, and the monitoring event.
type EvaluateApplicationUseCase struct {
	router    *service.DecisionRouter
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewEvaluateApplicationUseCase wires dependencies. The publisher may be nil;
// the decision stream is monitoring, not part of the result.
func NewEvaluateApplicationUseCase(
	router *service.DecisionRouter,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *EvaluateApplicationUseCase {
	return &EvaluateApplicationUseCase{
		router:    router,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates the application and routes it through both policy
// versions. The only error path is caller-side input validation; every
// policy outcome, including rejection, returns successfully.
func (uc *EvaluateApplicationUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateApplicationRequest,
) (dto.RoutingResultResponse, error) {
	app := model.Application{
		FullName:            req.FullName,
		Email:               req.Email,
		Phone:               req.Phone,
		State:               req.State,
		LoanPurpose:         req.LoanPurpose,
		AnnualIncome:        req.AnnualIncome,
		CreditScore:         req.CreditScore,
		MonthlyDebtPayments: req.MonthlyDebtPayments,
		HousingPayment:      req.HousingPayment,
		LoanAmount:          req.LoanAmount,
		LoanTermMonths:      req.LoanTermMonths,
		EmploymentYears:     req.EmploymentYears,
		Age:                 req.Age,
	}
	if err := app.Validate(); err != nil {
		return dto.RoutingResultResponse{}, fmt.Errorf("validate application: %w", err)
	}

	callerID := req.CallerID
	if callerID == "" {
		callerID = req.Email
	}

	result := uc.router.Route(ctx, app, port.FlagContext{UserID: callerID})

	uc.publishDecision(ctx, result)

	return dto.RoutingResultResponse{
		Model:    result.Model,
		Decision: toDecisionResponse(result.Chosen),
		Shadow:   toDecisionResponse(result.Shadow),
	}, nil
}

// publishDecision emits the champion/shadow comparison event. Best-effort: a
// broker outage must never turn a computed decision into a failed call.
func (uc *EvaluateApplicationUseCase) publishDecision(ctx context.Context, result model.RoutingResult) {
	if uc.publisher == nil {
		return
	}
	evt := event.NewDecisionEvaluated(
		result.Chosen.DecisionID,
		result.Chosen.ModelVersion,
		result.Chosen.Decision.String(),
		result.Shadow.ModelVersion,
		result.Shadow.Decision.String(),
		result.Chosen.RiskGrade,
		result.Agreement(),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish decision event",
			"decision_id", result.Chosen.DecisionID,
			"error", err,
		)
	}
}

func toDecisionResponse(rec model.DecisionRecord) dto.DecisionResponse {
	reasons := rec.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	resp := dto.DecisionResponse{
		DecisionID:           rec.DecisionID,
		TimestampUTC:         rec.Timestamp,
		ModelVersion:         rec.ModelVersion,
		Decision:             rec.Decision.String(),
		RiskGrade:            rec.RiskGrade,
		DTI:                  rec.DTI,
		Reasons:              reasons,
		AdverseActionReasons: rec.AdverseActionReasons,
	}

	if sc := rec.Scorecard; sc != nil {
		resp.PTI = ptr(sc.PTI)
		resp.ApprovalProbability = ptr(sc.ApprovalProbability)
		if sc.MaxAffordableLoan > 0 {
			resp.MaxAffordableLoan = ptr(sc.MaxAffordableLoan)
		}
		if sc.CounterofferAmount > 0 {
			resp.CounterofferLoanAmount = ptr(sc.CounterofferAmount)
		}
	}

	if p := rec.Pricing; p != nil {
		pricing := &dto.PricingResponse{
			APRPercent:     p.APRPercent,
			MonthlyPayment: p.MonthlyPayment,
		}
		if p.OriginationFee > 0 {
			pricing.OriginationFee = ptr(p.OriginationFee)
		}
		resp.Pricing = pricing
	}

	if o := rec.Offer; o != nil {
		aprPercent := o.APR * 100
		if rec.Pricing != nil {
			aprPercent = rec.Pricing.APRPercent
		}
		resp.Offer = &dto.OfferResponse{
			ApprovedAmount:          o.ApprovedAmount,
			TermMonths:              o.TermMonths,
			APRPercent:              aprPercent,
			OriginationFee:          o.OriginationFee,
			EstimatedMonthlyPayment: o.MonthlyPayment,
		}
	}

	return resp
}

func ptr(v float64) *float64 { return &v }
