package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a loan with its payments and documents.
	// Returns apperrors.ErrNotFound when no loan has the given ID.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans returns the loans matching filter, ordered and paginated, plus
	// the number of matches before pagination.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, int, error)

	// CountLoans returns the total number of loans.
	CountLoans(ctx context.Context) (int, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan applies patch to an existing loan and returns the stored result.
	UpdateLoan(ctx context.Context, loanID string, patch domain.LoanPatch, now time.Time) (*domain.Loan, error)

	// DeleteLoan removes a loan. Returns apperrors.ErrNotFound if nothing was deleted.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with transaction capabilities
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
