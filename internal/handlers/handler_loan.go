package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

// loanHandler handles JSON API requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// RegisterLoanRoutes registers the JSON API routes for loans. Mutating
// routes are wrapped in the given middleware (rate limiting).
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, mutation ...gin.HandlerFunc) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.POST("", chain(mutation, h.createLoan)...)
		loans.PATCH("/:id", chain(mutation, h.updateLoan)...)
		loans.PUT("/:id", chain(mutation, h.updateLoan)...)
		loans.DELETE("/:id", chain(mutation, h.deleteLoan)...)
	}
}

// chain returns middleware followed by handler in a fresh slice.
func chain(mws []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mws)+1)
	out = append(out, mws...)
	return append(out, handler)
}

// listLoans godoc
// @Summary List loans
// @Description Returns one page of loans filtered by search text and status, in the requested order.
// @Tags loans
// @Produce json
// @Param search query string false "Case-insensitive match on borrower name, email or description"
// @Param status query string false "PENDING, ACTIVE, PAID, DEFAULTED, CANCELLED or all"
// @Param sort query string false "Sort key" default(latest)
// @Param page query int false "1-based page number" default(1)
// @Param per_page query int false "Page size (max 100)" default(10)
// @Success 200 {object} dataEnvelope{data=dto.ListLoansResponse}
// @Failure 400 {object} errorResponse "Unknown status filter"
// @Failure 500 {object} errorResponse "Failed to list loans"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params := dto.ParseListLoansParams(c.Request.URL.Query())
	logger.Debug("Received request to list loans", slog.Any("params", params))

	page, err := h.loanService.ListLoans(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	respondData(c, http.StatusOK, dto.ToListLoansResponse(page))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Description Retrieves a loan with its payments, documents and derived repayment values.
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dataEnvelope{data=dto.LoanDetailResponse}
// @Failure 404 {object} errorResponse "Loan not found"
// @Failure 500 {object} errorResponse "Failed to retrieve loan"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	respondData(c, http.StatusOK, dto.ToLoanDetailResponse(loan))
}

// bindLoanInput decodes the JSON body and coerces it into typed input.
// It writes the error response itself and reports whether to continue.
func bindLoanInput(c *gin.Context) (dto.LoanInput, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind loan JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format"})
		return dto.LoanInput{}, false
	}

	input, err := validation.ParseFields(req.Fields())
	if err != nil {
		respondError(c, err, "Invalid loan data")
		return dto.LoanInput{}, false
	}
	return input, true
}

// createLoan godoc
// @Summary Create a loan
// @Description Validates and stores a new loan. The loan always starts as PENDING; endDate defaults to startDate plus term months.
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.LoanRequest true "Loan details"
// @Success 201 {object} dataEnvelope{data=dto.LoanResponse}
// @Failure 400 {object} errorResponse "Invalid input format or validation error"
// @Failure 429 {object} errorResponse "Too many requests"
// @Failure 500 {object} errorResponse "Failed to create loan"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	input, ok := bindLoanInput(c)
	if !ok {
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create loan")
		return
	}
	if subject, ok := middleware.GetSubjectFromContext(c); ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan created via API",
			slog.String("loan_id", loan.LoanID), slog.String("subject", subject))
	}
	respondData(c, http.StatusCreated, dto.ToLoanResponse(loan))
}

// updateLoan godoc
// @Summary Update a loan
// @Description Applies the supplied fields to an existing loan; omitted fields are left unchanged.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param loan body dto.LoanRequest true "Fields to change"
// @Success 200 {object} dataEnvelope{data=dto.LoanResponse}
// @Failure 400 {object} errorResponse "Invalid input format or validation error"
// @Failure 404 {object} errorResponse "Loan not found"
// @Failure 500 {object} errorResponse "Failed to update loan"
// @Security BearerAuth
// @Router /loans/{id} [patch]
// @Router /loans/{id} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	input, ok := bindLoanInput(c)
	if !ok {
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, "Failed to update loan")
		return
	}
	respondData(c, http.StatusOK, dto.ToLoanResponse(loan))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Deletes a loan together with its payments and documents.
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse "Loan not found"
// @Failure 500 {object} errorResponse "Failed to delete loan"
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	if err := h.loanService.DeleteLoan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete loan")
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true})
}
