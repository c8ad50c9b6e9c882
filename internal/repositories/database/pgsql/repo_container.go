package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/loan_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, queryTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanRepo: newPgxLoanRepository(dbPool, queryTimeout),
	}
}
