package domain

import (
	"time"

	"github.com/SscSPs/loan_tracker/internal/utils/amortization"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan. Any status may be written by an
// update; no transitions are enforced.
type LoanStatus string

const (
	StatusPending   LoanStatus = "PENDING"
	StatusActive    LoanStatus = "ACTIVE"
	StatusPaid      LoanStatus = "PAID"
	StatusDefaulted LoanStatus = "DEFAULTED"
	StatusCancelled LoanStatus = "CANCELLED"
)

// LoanStatuses lists every status in display order.
var LoanStatuses = []LoanStatus{StatusPending, StatusActive, StatusPaid, StatusDefaulted, StatusCancelled}

var statusLabels = map[LoanStatus]string{
	StatusPending:   "Pending",
	StatusActive:    "Active",
	StatusPaid:      "Paid",
	StatusDefaulted: "Defaulted",
	StatusCancelled: "Cancelled",
}

// IsValid reports whether s is one of the known statuses.
func (s LoanStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name of the status.
func (s LoanStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Loan represents a loan record within the core domain.
type Loan struct {
	LoanID        string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	InterestRate  decimal.Decimal `json:"interestRate"` // percent per year
	Term          int             `json:"term"`         // months
	BorrowerName  string          `json:"borrowerName"`
	BorrowerEmail string          `json:"borrowerEmail"`
	Description   string          `json:"description"` // Empty when NULL in DB
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Status        LoanStatus      `json:"status"`
	Timestamps
	Payments  []Payment  `json:"payments,omitempty"`
	Documents []Document `json:"documents,omitempty"`
}

// MonthlyPayment is the amortized monthly payment, rounded to cents.
func (l Loan) MonthlyPayment() decimal.Decimal {
	return amortization.MonthlyPayment(l.Amount, l.InterestRate, l.Term)
}

// ComputedEndDate is StartDate plus Term calendar months.
func (l Loan) ComputedEndDate() time.Time {
	return amortization.AddMonths(l.StartDate, l.Term)
}

// LoanPatch carries the fields of a partial update. Nil fields are left unchanged.
type LoanPatch struct {
	Amount        *decimal.Decimal
	InterestRate  *decimal.Decimal
	Term          *int
	BorrowerName  *string
	BorrowerEmail *string
	Description   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *LoanStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p LoanPatch) IsEmpty() bool {
	return p.Amount == nil && p.InterestRate == nil && p.Term == nil &&
		p.BorrowerName == nil && p.BorrowerEmail == nil && p.Description == nil &&
		p.StartDate == nil && p.EndDate == nil && p.Status == nil
}

// Payment is a repayment recorded against a loan. Read-only in this service.
type Payment struct {
	PaymentID string          `json:"id"`
	LoanID    string          `json:"loanId"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Document is a file attached to a loan. Read-only in this service.
type Document struct {
	DocumentID string    `json:"id"`
	LoanID     string    `json:"loanId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
}
