package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus mirrors the loan_status column values.
type LoanStatus string

// Loan is the storage representation of a row in the loans table.
type Loan struct {
	LoanID        string          `db:"id"`
	Amount        decimal.Decimal `db:"amount"`
	InterestRate  decimal.Decimal `db:"interest_rate"`
	Term          int             `db:"term"`
	BorrowerName  string          `db:"borrower_name"`
	BorrowerEmail string          `db:"borrower_email"`
	Description   string          `db:"description"` // Nullable
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	Status        LoanStatus      `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Payment is a row in the payments table.
type Payment struct {
	PaymentID string          `db:"id"`
	LoanID    string          `db:"loan_id"`
	Amount    decimal.Decimal `db:"amount"`
	PaidAt    time.Time       `db:"paid_at"`
	CreatedAt time.Time       `db:"created_at"`
}

// Document is a row in the documents table.
type Document struct {
	DocumentID string    `db:"id"`
	LoanID     string    `db:"loan_id"`
	Name       string    `db:"name"`
	URL        string    `db:"url"`
	CreatedAt  time.Time `db:"created_at"`
}
