package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/utils/amortization"
	"github.com/shopspring/decimal"
)

// Loan field names, shared by JSON bodies, HTML forms and validation errors.
const (
	FieldAmount        = "amount"
	FieldInterestRate  = "interestRate"
	FieldTerm          = "term"
	FieldBorrowerName  = "borrowerName"
	FieldBorrowerEmail = "borrowerEmail"
	FieldDescription   = "description"
	FieldStartDate     = "startDate"
	FieldEndDate       = "endDate"
	FieldStatus        = "status"
)

// LoanFields lists every writable loan field in form order.
var LoanFields = []string{
	FieldBorrowerName, FieldBorrowerEmail, FieldAmount, FieldInterestRate, FieldTerm,
	FieldStartDate, FieldEndDate, FieldStatus, FieldDescription,
}

// LoanRequest is the JSON body accepted by the create and update endpoints.
// Numeric fields may be sent either as JSON numbers or as strings; omitted or
// null fields are treated as not supplied.
type LoanRequest struct {
	Amount        *FormValue `json:"amount" swaggertype:"string" example:"10000.00"`
	InterestRate  *FormValue `json:"interestRate" swaggertype:"string" example:"5.00"`
	Term          *FormValue `json:"term" swaggertype:"string" example:"12"`
	BorrowerName  *FormValue `json:"borrowerName" swaggertype:"string" example:"John Doe"`
	BorrowerEmail *FormValue `json:"borrowerEmail" swaggertype:"string" example:"john.doe@example.com"`
	Description   *FormValue `json:"description" swaggertype:"string"`
	StartDate     *FormValue `json:"startDate" swaggertype:"string" example:"2024-01-01"`
	EndDate       *FormValue `json:"endDate" swaggertype:"string" example:"2025-01-01"`
	Status        *FormValue `json:"status" swaggertype:"string" example:"ACTIVE"`
}

// Fields flattens the request into the field-value map used by HTML forms.
func (r LoanRequest) Fields() map[string]string {
	out := make(map[string]string)
	put := func(name string, v *FormValue) {
		if v != nil {
			out[name] = string(*v)
		}
	}
	put(FieldAmount, r.Amount)
	put(FieldInterestRate, r.InterestRate)
	put(FieldTerm, r.Term)
	put(FieldBorrowerName, r.BorrowerName)
	put(FieldBorrowerEmail, r.BorrowerEmail)
	put(FieldDescription, r.Description)
	put(FieldStartDate, r.StartDate)
	put(FieldEndDate, r.EndDate)
	put(FieldStatus, r.Status)
	return out
}

// LoanInput is a coerced, typed loan payload. Nil fields were not supplied.
type LoanInput struct {
	Amount        *decimal.Decimal
	InterestRate  *decimal.Decimal
	Term          *int
	BorrowerName  *string
	BorrowerEmail *string
	Description   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *domain.LoanStatus
}

// ToPatch converts the supplied fields into a domain patch.
func (in LoanInput) ToPatch() domain.LoanPatch {
	return domain.LoanPatch{
		Amount:        in.Amount,
		InterestRate:  in.InterestRate,
		Term:          in.Term,
		BorrowerName:  in.BorrowerName,
		BorrowerEmail: in.BorrowerEmail,
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        in.Status,
	}
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Sort    string `form:"sort"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// ParseListLoansParams reads listing parameters from a query string. Paging
// values that are not integers are left at zero so Normalize replaces them.
func ParseListLoansParams(q url.Values) ListLoansParams {
	atoi := func(key string) int {
		n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
		if err != nil {
			return 0
		}
		return n
	}
	return ListLoansParams{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		Sort:    q.Get("sort"),
		Page:    atoi("page"),
		PerPage: atoi("per_page"),
	}
}

// Query encodes p back into query parameters, omitting empty filters.
func (p ListLoansParams) Query() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Normalize replaces out-of-range paging values with defaults.
func (p ListLoansParams) Normalize() ListLoansParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Sort == "" {
		p.Sort = string(domain.SortLatest)
	}
	return p
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID        string            `json:"id"`
	Amount        decimal.Decimal   `json:"amount"`
	InterestRate  decimal.Decimal   `json:"interestRate"`
	Term          int               `json:"term"`
	BorrowerName  string            `json:"borrowerName"`
	BorrowerEmail string            `json:"borrowerEmail"`
	Description   string            `json:"description"`
	StartDate     Date              `json:"startDate"`
	EndDate       Date              `json:"endDate"`
	Status        domain.LoanStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// LoanDetailResponse adds related records and display-only values to a loan.
type LoanDetailResponse struct {
	LoanResponse
	amortization.Summary
	ComputedEndDate Date              `json:"computedEndDate"`
	Payments        []domain.Payment  `json:"payments"`
	Documents       []domain.Document `json:"documents"`
}

// ListLoansResponse wraps one page of loans with its pagination metadata.
type ListLoansResponse struct {
	Loans      []LoanResponse `json:"loans"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	TotalPages int            `json:"totalPages"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:        l.LoanID,
		Amount:        l.Amount,
		InterestRate:  l.InterestRate,
		Term:          l.Term,
		BorrowerName:  l.BorrowerName,
		BorrowerEmail: l.BorrowerEmail,
		Description:   l.Description,
		StartDate:     Date(l.StartDate),
		EndDate:       Date(l.EndDate),
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ToLoanDetailResponse converts a fully loaded domain.Loan to LoanDetailResponse DTO.
func ToLoanDetailResponse(l *domain.Loan) LoanDetailResponse {
	payments := l.Payments
	if payments == nil {
		payments = []domain.Payment{}
	}
	documents := l.Documents
	if documents == nil {
		documents = []domain.Document{}
	}
	return LoanDetailResponse{
		LoanResponse:    ToLoanResponse(l),
		Summary:         amortization.Summarize(l.Amount, l.InterestRate, l.Term),
		ComputedEndDate: Date(l.ComputedEndDate()),
		Payments:        payments,
		Documents:       documents,
	}
}

// ToListLoansResponse converts a domain.LoanPage to ListLoansResponse DTO.
func ToListLoansResponse(p *domain.LoanPage) ListLoansResponse {
	loans := make([]LoanResponse, len(p.Loans))
	for i := range p.Loans {
		loans[i] = ToLoanResponse(&p.Loans[i])
	}
	return ListLoansResponse{
		Loans:      loans,
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
	}
}
