package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

// dataEnvelope wraps successful JSON API payloads.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorResponse is the JSON API error body. Fields is set for validation failures only.
type errorResponse struct {
	Error  string              `json:"error" example:"Validation failed"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// successResponse acknowledges a mutation that returns no entity.
type successResponse struct {
	Success bool `json:"success" example:"true"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataEnvelope{Data: data})
}

// respondError maps a service error onto the JSON API envelope. Storage
// details are logged with their stack and never sent to the client.
func respondError(c *gin.Context, err error, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Fields: verrs.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Loan not found")
		c.JSON(http.StatusNotFound, errorResponse{Error: "Loan not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate loan", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, errorResponse{Error: "Loan already exists"})
	default:
		logServerError(logger, err, failureMsg)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: failureMsg})
	}
}

func logServerError(logger *slog.Logger, err error, msg string) {
	attrs := []any{slog.String("error", err.Error())}
	if stack := apperrors.StackTrace(err); stack != "" {
		attrs = append(attrs, slog.String("stack", stack))
	}
	logger.Error(msg, attrs...)
}
