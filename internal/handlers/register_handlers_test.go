package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/loan_tracker/internal/cache"
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/handlers"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAppRouter(t *testing.T, cfg *config.Config, loans *MockLoanService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	limiter, err := middleware.NewRateLimiter("1-M")
	require.NoError(t, err)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Loan:   loans,
		Health: new(MockHealthService),
	}, cache.Disabled{}, limiter)
	return r
}

func TestRegisterRoutes_ProductionHidesDebugAndSwagger(t *testing.T) {
	r := newAppRouter(t, &config.Config{IsProduction: true}, new(MockLoanService))

	for _, path := range []string{"/api/debug", "/swagger/index.html"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRegisterRoutes_SwaggerOutsideProduction(t *testing.T) {
	r := newAppRouter(t, &config.Config{}, new(MockLoanService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loan Tracker API")
}

func TestRegisterRoutes_APIRequiresTokenWhenSecretSet(t *testing.T) {
	loans := new(MockLoanService)
	r := newAppRouter(t, &config.Config{AuthJWTSecret: "test-secret-key-that-is-long-enough"}, loans)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	loans.AssertNotCalled(t, "ListLoans", mock.Anything, mock.Anything)
}

func TestRegisterRoutes_MutationsAreRateLimited(t *testing.T) {
	loans := new(MockLoanService)
	loans.On("DeleteLoan", mock.Anything, "abc").Return(nil).Once()
	loans.On("ListLoans", mock.Anything, mock.Anything).
		Return(&domain.LoanPage{Loans: []domain.Loan{}, Page: 1, PerPage: 10}, nil)
	r := newAppRouter(t, &config.Config{}, loans)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/loans/abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/loans/abc", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Reads are not limited.
	for i := 0; i < 3; i++ {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	loans.AssertExpectations(t)
}
