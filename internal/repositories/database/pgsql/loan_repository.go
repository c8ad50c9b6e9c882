package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/loan_tracker/internal/models"
	"github.com/SscSPs/loan_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool DBPool, queryTimeout time.Duration) portsrepo.LoanRepositoryWithTx {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool, QueryTimeout: queryTimeout},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (models.Loan, error) {
	var m models.Loan
	var description sql.NullString
	err := row.Scan(
		&m.LoanID,
		&m.Amount,
		&m.InterestRate,
		&m.Term,
		&m.BorrowerName,
		&m.BorrowerEmail,
		&description,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return m, err
	}
	if description.Valid {
		m.Description = description.String
	}
	return m, nil
}

// SaveLoan inserts a new loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (id, amount, interest_rate, term, borrower_name, borrower_email, description,
			start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.Amount,
		m.InterestRate,
		m.Term,
		m.BorrowerName,
		m.BorrowerEmail,
		nullableString(m.Description),
		m.StartDate,
		m.EndDate,
		string(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.Storage("save loan", err)
	}
	return nil
}

// FindLoanByID retrieves a loan together with its payments and documents.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("find loan", err)
	}
	loan := mapping.ToDomainLoan(m)

	if loan.Payments, err = r.listPayments(ctx, loanID); err != nil {
		return nil, err
	}
	if loan.Documents, err = r.listDocuments(ctx, loanID); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *PgxLoanRepository) listPayments(ctx context.Context, loanID string) ([]domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, paid_at, created_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY paid_at DESC, id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.Storage("query payments", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		var p models.Payment
		err := row.Scan(&p.PaymentID, &p.LoanID, &p.Amount, &p.PaidAt, &p.CreatedAt)
		return mapping.ToDomainPayment(p), err
	})
	if err != nil {
		return nil, apperrors.Storage("scan payments", err)
	}
	return payments, nil
}

func (r *PgxLoanRepository) listDocuments(ctx context.Context, loanID string) ([]domain.Document, error) {
	query := `
		SELECT id, loan_id, name, url, created_at
		FROM documents
		WHERE loan_id = $1
		ORDER BY created_at DESC, id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.Storage("query documents", err)
	}
	defer rows.Close()

	documents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Document, error) {
		var d models.Document
		err := row.Scan(&d.DocumentID, &d.LoanID, &d.Name, &d.URL, &d.CreatedAt)
		return mapping.ToDomainDocument(d), err
	})
	if err != nil {
		return nil, apperrors.Storage("scan documents", err)
	}
	return documents, nil
}

// ListLoans runs the count and the page query inside one read-only snapshot
// so the total always agrees with the returned rows.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := buildLoanListQuery(filter)

	tx, err := r.BeginReadOnly(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var total int
	if err := tx.QueryRow(ctx, q.CountSQL, q.Args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Storage("count filtered loans", err)
	}

	rows, err := tx.Query(ctx, q.PageSQL, q.PageArgs...)
	if err != nil {
		return nil, 0, apperrors.Storage("list loans", err)
	}
	modelLoans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, 0, apperrors.Storage("scan loans", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}
	return mapping.ToDomainLoanSlice(modelLoans), total, nil
}

// CountLoans returns the number of stored loans.
func (r *PgxLoanRepository) CountLoans(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans;`).Scan(&total); err != nil {
		return 0, apperrors.Storage("count loans", err)
	}
	return total, nil
}

// UpdateLoan writes the supplied patch fields and returns the updated loan.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loanID string, patch domain.LoanPatch, now time.Time) (*domain.Loan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args := buildLoanUpdate(loanID, patch, now)
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("update loan", err)
	}
	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}

// DeleteLoan removes a loan; payments and documents go with it via ON DELETE CASCADE.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE id = $1;`, loanID)
	if err != nil {
		return apperrors.Storage("delete loan", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
