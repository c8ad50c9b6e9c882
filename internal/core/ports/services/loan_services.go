package services

import (
	"context"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// ListLoans returns one page of loans matching params together with the total match count.
	ListLoans(ctx context.Context, params dto.ListLoansParams) (*domain.LoanPage, error)

	// GetLoanByID retrieves a loan with its payments and documents.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
}

// LoanWriterSvc defines write operations for loan data
type LoanWriterSvc interface {
	// CreateLoan validates and persists a new PENDING loan.
	CreateLoan(ctx context.Context, input dto.LoanInput) (*domain.Loan, error)

	// UpdateLoan validates the supplied fields and applies them to an existing loan.
	UpdateLoan(ctx context.Context, loanID string, input dto.LoanInput) (*domain.Loan, error)

	// DeleteLoan removes a loan.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}

// ViewInvalidator discards cached renderings of loan pages.
type ViewInvalidator interface {
	// InvalidateLoans drops every cached list view and the detail views of loanIDs.
	InvalidateLoans(ctx context.Context, loanIDs ...string) error
}
