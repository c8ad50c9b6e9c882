package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthService_Healthy(t *testing.T) {
	repo := new(MockLoanRepository)
	repo.On("CountLoans", context.Background()).Return(7, nil).Once()
	svc := services.NewHealthService(repo, services.HealthEnvironment{Name: "production", HasDBURL: true})

	report := svc.Check(context.Background())

	assert.True(t, report.Healthy)
	assert.Equal(t, 7, report.LoanCount)
	assert.NoError(t, report.Err)
	assert.Equal(t, "production", report.Environment)
	assert.True(t, report.HasDBURL)
	assert.False(t, report.HasDirectURL)
	assert.False(t, report.CheckedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestHealthService_Unhealthy(t *testing.T) {
	repo := new(MockLoanRepository)
	repo.On("CountLoans", context.Background()).
		Return(0, apperrors.Storage("count loans", errors.New("dial tcp: refused"))).Once()
	svc := services.NewHealthService(repo, services.HealthEnvironment{})

	report := svc.Check(context.Background())

	assert.False(t, report.Healthy)
	assert.ErrorIs(t, report.Err, apperrors.ErrStorage)
	repo.AssertExpectations(t)
}

func TestHealthService_EnvironmentSkipsStorage(t *testing.T) {
	repo := new(MockLoanRepository)
	svc := services.NewHealthService(repo, services.HealthEnvironment{Name: "staging", HasDirectURL: true})

	report := svc.Environment()

	assert.Equal(t, "staging", report.Environment)
	assert.True(t, report.HasDirectURL)
	assert.False(t, report.Healthy)
	repo.AssertNotCalled(t, "CountLoans", mock.Anything)
}
