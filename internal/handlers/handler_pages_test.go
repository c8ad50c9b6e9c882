package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/cache"
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/handlers"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PageHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLoanService *MockLoanService
	views           *cache.Memory
}

func (suite *PageHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.Recovery(handlers.RenderPanicPage))
	suite.mockLoanService = new(MockLoanService)
	suite.views = cache.NewMemory(16, time.Minute)

	handlers.RegisterPageRoutes(suite.router, suite.mockLoanService, suite.views)
}

func (suite *PageHandlerTestSuite) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func (suite *PageHandlerTestSuite) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PageHandlerTestSuite) TestRootRedirectsToList() {
	w := suite.get("/")
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/loans", w.Header().Get("Location"))
}

func (suite *PageHandlerTestSuite) TestListPage_EmptyStateAndCache() {
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).
		Return(&domain.LoanPage{Loans: []domain.Loan{}, Page: 1, PerPage: 10}, nil).Once()

	w := suite.get("/loans")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("MISS", w.Header().Get("X-Cache"))
	suite.Contains(w.Body.String(), "Manage your active loans and applications")
	suite.Contains(w.Body.String(), "No loans yet.")
	suite.Contains(w.Body.String(), "Create New Loan")

	// Same normalized query is served from the cache.
	w = suite.get("/loans?page=1&per_page=10&sort=latest")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("HIT", w.Header().Get("X-Cache"))
	suite.mockLoanService.AssertNumberOfCalls(suite.T(), "ListLoans", 1)
}

func (suite *PageHandlerTestSuite) TestListPage_RendersRowsAndPagination() {
	loan := sampleLoan("Ann Lee", 1000)
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.MatchedBy(func(p dto.ListLoansParams) bool {
		return p.Page == 2 && p.PerPage == 1 && p.Status == "ACTIVE"
	})).Return(&domain.LoanPage{Loans: []domain.Loan{*loan}, Total: 3, Page: 2, PerPage: 1, TotalPages: 3}, nil).Once()

	w := suite.get("/loans?status=ACTIVE&page=2&per_page=1")

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Ann Lee")
	suite.Contains(body, "$1,000.00")
	suite.Contains(body, "$100.00")
	suite.Contains(body, "View Details")
	suite.Contains(body, "Showing 2-2 of 3")
	suite.Contains(body, `rel="prev"`)
	suite.Contains(body, `rel="next"`)
	suite.Contains(body, `<option value="ACTIVE" selected>Active</option>`)
}

func (suite *PageHandlerTestSuite) TestListPage_ServiceFailureShowsRetryPanel() {
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).
		Return(nil, apperrors.Storage("list loans", errors.New("connection reset"))).Once()

	w := suite.get("/loans?search=ann")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to load loans. Please try again.")
	suite.Contains(w.Body.String(), "Try again")
	suite.NotContains(w.Body.String(), "connection reset")

	// Failures are never cached.
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).
		Return(&domain.LoanPage{Loans: []domain.Loan{}, Page: 1, PerPage: 10}, nil).Once()
	w = suite.get("/loans?search=ann")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("MISS", w.Header().Get("X-Cache"))
}

func (suite *PageHandlerTestSuite) TestDetailPage() {
	loan := sampleLoan("A B", 1000)
	loan.Description = "Car <repair>"
	suite.mockLoanService.On("GetLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	w := suite.get("/loans/" + loan.LoanID)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Loan Details")
	suite.Contains(body, "Back to Loans")
	suite.Contains(body, "$100.00")
	suite.Contains(body, "November 1, 2024")
	suite.Contains(body, "Car &lt;repair&gt;")
	suite.Contains(body, "No payments recorded.")

	w = suite.get("/loans/" + loan.LoanID)
	suite.Equal("HIT", w.Header().Get("X-Cache"))
}

func (suite *PageHandlerTestSuite) TestListPage_WriteDuringReadIsNotCached() {
	stale := sampleLoan("Old Name", 1000)
	fresh := sampleLoan("New Name", 1000)

	// The loan is updated while the first request is still reading rows.
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			suite.Require().NoError(suite.views.InvalidateLoans(args.Get(0).(context.Context), stale.LoanID))
		}).
		Return(&domain.LoanPage{Loans: []domain.Loan{*stale}, Total: 1, Page: 1, PerPage: 10, TotalPages: 1}, nil).Once()
	suite.mockLoanService.On("ListLoans", mock.Anything, mock.Anything).
		Return(&domain.LoanPage{Loans: []domain.Loan{*fresh}, Total: 1, Page: 1, PerPage: 10, TotalPages: 1}, nil).Once()

	w := suite.get("/loans")
	suite.Equal("MISS", w.Header().Get("X-Cache"))
	suite.Contains(w.Body.String(), "Old Name")

	w = suite.get("/loans")
	suite.Equal("MISS", w.Header().Get("X-Cache"))
	suite.Contains(w.Body.String(), "New Name")
	suite.NotContains(w.Body.String(), "Old Name")
	suite.mockLoanService.AssertNumberOfCalls(suite.T(), "ListLoans", 2)

	w = suite.get("/loans")
	suite.Equal("HIT", w.Header().Get("X-Cache"))
	suite.Contains(w.Body.String(), "New Name")
}

func (suite *PageHandlerTestSuite) TestDetailPage_WriteDuringReadIsNotCached() {
	stale := sampleLoan("Old Name", 1000)
	fresh := *stale
	fresh.BorrowerName = "New Name"

	suite.mockLoanService.On("GetLoanByID", mock.Anything, stale.LoanID).
		Run(func(args mock.Arguments) {
			suite.Require().NoError(suite.views.InvalidateLoans(args.Get(0).(context.Context), stale.LoanID))
		}).
		Return(stale, nil).Once()
	suite.mockLoanService.On("GetLoanByID", mock.Anything, stale.LoanID).Return(&fresh, nil).Once()

	suite.Contains(suite.get("/loans/"+stale.LoanID).Body.String(), "Old Name")

	w := suite.get("/loans/" + stale.LoanID)
	suite.Equal("MISS", w.Header().Get("X-Cache"))
	suite.Contains(w.Body.String(), "New Name")
	suite.mockLoanService.AssertNumberOfCalls(suite.T(), "GetLoanByID", 2)
}

func (suite *PageHandlerTestSuite) TestDetailPage_NotFound() {
	suite.mockLoanService.On("GetLoanByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.get("/loans/nope")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Loan not found.")
	suite.Contains(w.Body.String(), "View All Loans")
}

func (suite *PageHandlerTestSuite) TestCreateForm_OmitsStatus() {
	w := suite.get("/loans/create")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `name="borrowerName"`)
	suite.NotContains(w.Body.String(), `name="status"`)
}

func (suite *PageHandlerTestSuite) TestEditForm_PrefillsValues() {
	loan := sampleLoan("A B", 1000)
	suite.mockLoanService.On("GetLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	w := suite.get("/loans/" + loan.LoanID + "/edit")

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Edit Loan")
	suite.Contains(body, `value="1000.00"`)
	suite.Contains(body, `value="2024-01-01"`)
	suite.Contains(body, `<option value="PENDING" selected>Pending</option>`)
}

func (suite *PageHandlerTestSuite) TestSubmitCreate_RedirectsToDetail() {
	created := sampleLoan("A B", 1000)
	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.MatchedBy(func(in dto.LoanInput) bool {
		return in.BorrowerEmail != nil && *in.BorrowerEmail == "a@b.com" && in.EndDate == nil
	})).Return(created, nil).Once()

	w := suite.postForm("/loans", url.Values{
		"amount":        {"1000"},
		"interestRate":  {"0"},
		"term":          {"10"},
		"borrowerName":  {"A B"},
		"borrowerEmail": {"a@b.com"},
		"startDate":     {"2024-01-01"},
		"endDate":       {""},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/loans/"+created.LoanID, w.Header().Get("Location"))
}

func (suite *PageHandlerTestSuite) TestSubmitCreate_RerendersWithFieldErrors() {
	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.Anything).Return(nil, borrowerNameTooShort()).Once()

	w := suite.postForm("/loans", url.Values{"borrowerName": {"A"}, "borrowerEmail": {"a@b.com"}})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Borrower name must be at least 2 characters.")
	suite.Contains(body, `value="a@b.com"`)
}

func (suite *PageHandlerTestSuite) TestSubmitCreate_CoercionErrorSkipsService() {
	w := suite.postForm("/loans", url.Values{"amount": {"lots"}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Please enter a valid amount (e.g., 1000.00)")
	suite.mockLoanService.AssertNotCalled(suite.T(), "CreateLoan", mock.Anything, mock.Anything)
}

func (suite *PageHandlerTestSuite) TestSubmitUpdate_NotFound() {
	suite.mockLoanService.On("UpdateLoan", mock.Anything, "gone", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postForm("/loans/gone", url.Values{"status": {"PAID"}})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "View All Loans")
}

func (suite *PageHandlerTestSuite) TestSubmitDelete_RedirectsToList() {
	suite.mockLoanService.On("DeleteLoan", mock.Anything, "abc").Return(nil).Once()

	w := suite.postForm("/loans/abc/delete", url.Values{})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/loans", w.Header().Get("Location"))
}

func (suite *PageHandlerTestSuite) TestPanicRendersFailurePage() {
	suite.mockLoanService.On("GetLoanByID", mock.Anything, "boom").Run(func(mock.Arguments) {
		panic("unexpected nil")
	})

	w := suite.get("/loans/boom")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Something went wrong!")
	suite.Contains(w.Body.String(), "Try again")
}

func TestPageHandler(t *testing.T) {
	suite.Run(t, new(PageHandlerTestSuite))
}
