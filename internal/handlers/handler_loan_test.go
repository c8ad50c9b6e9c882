package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/handlers"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) ListLoans(ctx context.Context, params dto.ListLoansParams) (*domain.LoanPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPage), args.Error(1)
}

func (m *MockLoanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, input dto.LoanInput) (*domain.Loan, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID string, input dto.LoanInput) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

func sampleLoan(name string, amount int64) *domain.Loan {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	return &domain.Loan{
		LoanID:        uuid.NewString(),
		Amount:        decimal.NewFromInt(amount),
		InterestRate:  decimal.Zero,
		Term:          10,
		BorrowerName:  name,
		BorrowerEmail: "a@b.com",
		StartDate:     start,
		EndDate:       time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func borrowerNameTooShort() error {
	errs := validation.NewErrors()
	errs.Add(dto.FieldBorrowerName, "Borrower name must be at least 2 characters.")
	return errs
}

type apiError struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLoanService *MockLoanService
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLoanService = new(MockLoanService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLoanRoutes(v1, suite.mockLoanService)
}

func (suite *LoanHandlerTestSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LoanHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) apiError {
	var body apiError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *LoanHandlerTestSuite) TestListLoans_PreservesServiceOrder() {
	big, small := sampleLoan("Big", 5000), sampleLoan("Small", 100)
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.MatchedBy(func(p dto.ListLoansParams) bool {
		return p.Sort == "amount_desc" && p.Page == 2 && p.PerPage == 5 && p.Search == "ann"
	})).Return(&domain.LoanPage{
		Loans: []domain.Loan{*big, *small}, Total: 7, Page: 2, PerPage: 5, TotalPages: 2,
	}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/loans?sort=amount_desc&page=2&per_page=5&search=ann", "")

	suite.Equal(http.StatusOK, w.Code)
	var body struct {
		Data dto.ListLoansResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(7, body.Data.Total)
	suite.Equal(2, body.Data.TotalPages)
	suite.Require().Len(body.Data.Loans, 2)
	suite.Equal(big.LoanID, body.Data.Loans[0].LoanID)
	suite.Equal(small.LoanID, body.Data.Loans[1].LoanID)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestListLoans_InvalidStatus() {
	errs := validation.NewErrors()
	errs.Add(dto.FieldStatus, "Invalid status")
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).Return(nil, errs).Once()

	w := suite.serve(http.MethodGet, "/api/v1/loans?status=bogus", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("Validation failed", body.Error)
	suite.Equal([]string{"Invalid status"}, body.Fields[dto.FieldStatus])
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	suite.mockLoanService.On("GetLoanByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/loans/missing", "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Loan not found", suite.decodeError(w).Error)
}

func (suite *LoanHandlerTestSuite) TestGetLoan_IncludesDerivedValues() {
	loan := sampleLoan("A B", 1000)
	suite.mockLoanService.On("GetLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/loans/"+loan.LoanID, "")

	suite.Equal(http.StatusOK, w.Code)
	var body struct {
		Data map[string]any `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("100", body.Data["monthlyPayment"])
	suite.Equal("2024-11-01", body.Data["computedEndDate"])
	suite.Equal([]any{}, body.Data["payments"])
	suite.Equal([]any{}, body.Data["documents"])
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_AcceptsNumbersAndStrings() {
	created := sampleLoan("A B", 1000)
	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.MatchedBy(func(in dto.LoanInput) bool {
		return in.Amount != nil && in.Amount.Equal(decimal.NewFromInt(1000)) &&
			in.Term != nil && *in.Term == 10 &&
			in.BorrowerName != nil && *in.BorrowerName == "A B" &&
			in.StartDate != nil && in.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/loans",
		`{"amount":1000,"interestRate":"0","term":"10","borrowerName":"A B","borrowerEmail":"a@b.com","startDate":"2024-01-01"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body struct {
		Data dto.LoanResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.LoanID, body.Data.LoanID)
	suite.Equal(domain.StatusPending, body.Data.Status)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_MalformedJSON() {
	w := suite.serve(http.MethodPost, "/api/v1/loans", `{"amount":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid request format", suite.decodeError(w).Error)
	suite.mockLoanService.AssertNotCalled(suite.T(), "CreateLoan", mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_UncoercibleAmount() {
	w := suite.serve(http.MethodPost, "/api/v1/loans", `{"amount":"abc"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal([]string{"Please enter a valid amount (e.g., 1000.00)"}, body.Fields[dto.FieldAmount])
	suite.mockLoanService.AssertNotCalled(suite.T(), "CreateLoan", mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_ValidationFailure() {
	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.Anything).Return(nil, borrowerNameTooShort()).Once()

	w := suite.serve(http.MethodPost, "/api/v1/loans", `{"borrowerName":"A"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal([]string{"Borrower name must be at least 2 characters."}, body.Fields[dto.FieldBorrowerName])
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_StorageFailureIsGeneric() {
	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.Anything).
		Return(nil, apperrors.Storage("insert loan", errors.New("pq: password authentication failed"))).Once()

	w := suite.serve(http.MethodPost, "/api/v1/loans", `{"borrowerName":"A B"}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to create loan", suite.decodeError(w).Error)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *LoanHandlerTestSuite) TestUpdateLoan_PatchAndPut() {
	loan := sampleLoan("A B", 1000)
	loan.Status = domain.StatusActive
	suite.mockLoanService.On("UpdateLoan", mock.Anything, loan.LoanID, mock.MatchedBy(func(in dto.LoanInput) bool {
		return in.Status != nil && *in.Status == domain.StatusActive && in.Amount == nil
	})).Return(loan, nil).Twice()

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		w := suite.serve(method, "/api/v1/loans/"+loan.LoanID, `{"status":"active"}`)
		suite.Equal(http.StatusOK, w.Code, method)
	}
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestDeleteLoan() {
	suite.mockLoanService.On("DeleteLoan", mock.Anything, "abc").Return(nil).Once()
	suite.mockLoanService.On("DeleteLoan", mock.Anything, "gone").Return(apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/loans/abc", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true}`, w.Body.String())

	w = suite.serve(http.MethodDelete, "/api/v1/loans/gone", "")
	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestLoanHandler(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
