package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meridianbank/underwriting-service/internal/application/usecase"
	"github.com/meridianbank/underwriting-service/internal/domain/valueobject"
)

// UnderwritingHandler exposes the evaluate operation over gRPC.
type UnderwritingHandler struct {
	UnimplementedUnderwritingServiceServer

	evaluate *usecase.EvaluateApplicationUseCase
	logger   *slog.Logger
}

// NewUnderwritingHandler creates a new handler with its use-case dependency.
func NewUnderwritingHandler(evaluate *usecase.EvaluateApplicationUseCase, logger *slog.Logger) *UnderwritingHandler {
	return &UnderwritingHandler{
		evaluate: evaluate,
		logger:   logger,
	}
}

// EvaluateApplication runs both policy versions and returns the routed
// result. Input validation failures map to InvalidArgument; policy outcomes
// (including rejection) are successful responses.
func (h *UnderwritingHandler) EvaluateApplication(
	ctx context.Context,
	req *EvaluateApplicationRequest,
) (*EvaluateApplicationResponse, error) {
	result, err := h.evaluate.Execute(ctx, *req)
	if err != nil {
		if errors.Is(err, valueobject.ErrInvalidApplication) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.ErrorContext(ctx, "evaluate application failed", "error", err)
		return nil, status.Error(codes.Internal, "evaluation failed")
	}

	h.logger.InfoContext(ctx, "application evaluated",
		"decision_id", result.Decision.DecisionID,
		"model", result.Model,
		"decision", result.Decision.Decision,
		"shadow_decision", result.Shadow.Decision,
	)

	return &result, nil
}
