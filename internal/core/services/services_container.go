package services

import (
	portsrepo "github.com/SscSPs/loan_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, views portssvc.ViewInvalidator) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Loan: NewLoanService(repos.LoanRepo, WithViewInvalidator(views)),
		Health: NewHealthService(repos.LoanRepo, HealthEnvironment{
			Name:         cfg.Environment,
			HasDBURL:     cfg.DatabaseURL != "",
			HasDirectURL: cfg.DirectURL != "",
		}),
	}
}
