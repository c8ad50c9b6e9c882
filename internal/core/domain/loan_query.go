package domain

// LoanSortKey names one of the fixed orderings available to loan listings.
type LoanSortKey string

const (
	SortLatest        LoanSortKey = "latest"
	SortBorrowerAsc   LoanSortKey = "borrower_asc"
	SortBorrowerDesc  LoanSortKey = "borrower_desc"
	SortAmountAsc     LoanSortKey = "amount_asc"
	SortAmountDesc    LoanSortKey = "amount_desc"
	SortRateAsc       LoanSortKey = "rate_asc"
	SortRateDesc      LoanSortKey = "rate_desc"
	SortTermAsc       LoanSortKey = "term_asc"
	SortTermDesc      LoanSortKey = "term_desc"
	SortStatusAsc     LoanSortKey = "status_asc"
	SortStatusDesc    LoanSortKey = "status_desc"
	SortStartDateAsc  LoanSortKey = "start_date_asc"
	SortStartDateDesc LoanSortKey = "start_date_desc"
)

// LoanSortField is the loan attribute a listing is ordered by.
type LoanSortField string

const (
	SortFieldCreatedAt    LoanSortField = "createdAt"
	SortFieldBorrowerName LoanSortField = "borrowerName"
	SortFieldAmount       LoanSortField = "amount"
	SortFieldInterestRate LoanSortField = "interestRate"
	SortFieldTerm         LoanSortField = "term"
	SortFieldStatus       LoanSortField = "status"
	SortFieldStartDate    LoanSortField = "startDate"
)

// SortOption describes a sort key: the field, direction and UI label.
type SortOption struct {
	Key        LoanSortKey
	Field      LoanSortField
	Descending bool
	Label      string
}

// SortOptions is the complete sort table, in display order.
var SortOptions = []SortOption{
	{SortLatest, SortFieldCreatedAt, true, "Latest first"},
	{SortBorrowerAsc, SortFieldBorrowerName, false, "Borrower (A-Z)"},
	{SortBorrowerDesc, SortFieldBorrowerName, true, "Borrower (Z-A)"},
	{SortAmountAsc, SortFieldAmount, false, "Amount (low to high)"},
	{SortAmountDesc, SortFieldAmount, true, "Amount (high to low)"},
	{SortRateAsc, SortFieldInterestRate, false, "Interest rate (low to high)"},
	{SortRateDesc, SortFieldInterestRate, true, "Interest rate (high to low)"},
	{SortTermAsc, SortFieldTerm, false, "Term (shortest first)"},
	{SortTermDesc, SortFieldTerm, true, "Term (longest first)"},
	{SortStatusAsc, SortFieldStatus, false, "Status (A-Z)"},
	{SortStatusDesc, SortFieldStatus, true, "Status (Z-A)"},
	{SortStartDateAsc, SortFieldStartDate, false, "Start date (oldest first)"},
	{SortStartDateDesc, SortFieldStartDate, true, "Start date (newest first)"},
}

// ResolveSort returns the option for key, falling back to SortLatest for
// unknown or empty keys.
func ResolveSort(key LoanSortKey) SortOption {
	for _, opt := range SortOptions {
		if opt.Key == key {
			return opt
		}
	}
	return SortOptions[0]
}

// StatusFilterAll is the sentinel status value meaning "no status filter".
const StatusFilterAll = "all"

// LoanFilter is a fully resolved listing query.
type LoanFilter struct {
	Search string
	Status LoanStatus // Empty means all statuses
	Sort   SortOption
	Limit  int
	Offset int
}

// LoanPage is one page of a loan listing.
type LoanPage struct {
	Loans      []Loan `json:"loans"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPages int    `json:"totalPages"`
}
