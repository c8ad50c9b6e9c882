package services

import (
	"context"
	"time"

	portsrepo "github.com/SscSPs/loan_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
)

// HealthEnvironment describes the deployment, reported alongside probe results.
type HealthEnvironment struct {
	Name         string
	HasDBURL     bool
	HasDirectURL bool
}

type healthService struct {
	BaseService
	loanRepo portsrepo.LoanReader
	env      HealthEnvironment
	now      func() time.Time
}

// NewHealthService creates a service that probes storage by counting loans.
func NewHealthService(loanRepo portsrepo.LoanReader, env HealthEnvironment) portssvc.HealthSvc {
	return &healthService{loanRepo: loanRepo, env: env, now: time.Now}
}

func (s *healthService) Environment() portssvc.HealthReport {
	return portssvc.HealthReport{
		Environment:  s.env.Name,
		HasDBURL:     s.env.HasDBURL,
		HasDirectURL: s.env.HasDirectURL,
		CheckedAt:    s.now().UTC(),
	}
}

func (s *healthService) Check(ctx context.Context) portssvc.HealthReport {
	report := s.Environment()

	s.LogInfo(ctx, "Health check: testing database connection")
	count, err := s.loanRepo.CountLoans(ctx)
	report.CheckedAt = s.now().UTC()
	if err != nil {
		s.LogError(ctx, err, "Health check: database connection failed")
		report.Err = err
		return report
	}

	report.Healthy = true
	report.LoanCount = count
	return report
}
