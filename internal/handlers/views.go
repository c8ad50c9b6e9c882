package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/utils"
	"github.com/SscSPs/loan_tracker/internal/utils/amortization"
	"github.com/SscSPs/loan_tracker/internal/utils/pagination"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	pageList     = "list"
	pageDetail   = "detail"
	pageForm     = "form"
	pageNotFound = "not_found"
	pageError    = "error"

	pageWindowSize = 5
)

var perPageChoices = []int{10, 25, 50, 100}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + utils.FormatMoney(d) },
	"rate":  func(d decimal.Decimal) string { return utils.FormatWithPrecision(d, 2) + "%" },
	"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
	"datetime": func(t time.Time) string {
		return t.UTC().Format("January 2, 2006 15:04 MST")
	},
	"statusClass": func(s domain.LoanStatus) string { return "status-" + string(s) },
}

// pageRenderer holds one parsed template set per page, each combining the
// shared layout with the page's "content" block.
type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer() *pageRenderer {
	r := &pageRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageList, pageDetail, pageForm, pageNotFound, pageError} {
		r.pages[name] = template.Must(template.New("layout.tmpl").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl"))
	}
	return r
}

// render executes a page into memory so a failed render never leaves a
// half-written response and the bytes can be cached.
func (r *pageRenderer) render(name string, data any) ([]byte, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// listView is the data behind the loan list page.
type listView struct {
	Title       string
	Search      string
	Statuses    []selectOption
	Sorts       []selectOption
	PerPages    []selectOption
	Loans       []domain.Loan
	Total       int
	Page        int
	TotalPages  int
	Links       []pageLink
	PrevURL     string
	NextURL     string
	Error       string
	RetryURL    string
	HasFilters  bool
	ResultRange string
}

func listURL(params dto.ListLoansParams, page int) string {
	params.Page = page
	return "/loans?" + params.Query().Encode()
}

func newListView(params dto.ListLoansParams, page *domain.LoanPage) listView {
	params = params.Normalize()
	v := listView{
		Title:      "Loans",
		Search:     params.Search,
		RetryURL:   listURL(params, params.Page),
		HasFilters: params.Search != "" || (params.Status != "" && params.Status != domain.StatusFilterAll),
	}

	v.Statuses = append(v.Statuses, selectOption{
		Value: domain.StatusFilterAll, Label: "All statuses",
		Selected: params.Status == "" || params.Status == domain.StatusFilterAll,
	})
	for _, s := range domain.LoanStatuses {
		v.Statuses = append(v.Statuses, selectOption{Value: string(s), Label: s.Label(), Selected: params.Status == string(s)})
	}
	current := domain.ResolveSort(domain.LoanSortKey(params.Sort))
	for _, opt := range domain.SortOptions {
		v.Sorts = append(v.Sorts, selectOption{Value: string(opt.Key), Label: opt.Label, Selected: opt.Key == current.Key})
	}
	for _, n := range perPageChoices {
		v.PerPages = append(v.PerPages, selectOption{Value: strconv.Itoa(n), Label: strconv.Itoa(n) + " per page", Selected: n == params.PerPage})
	}

	if page == nil {
		return v
	}
	v.Loans = page.Loans
	v.Total = page.Total
	v.Page = page.Page
	v.TotalPages = page.TotalPages
	for _, n := range pagination.Window(page.Page, page.TotalPages, pageWindowSize) {
		v.Links = append(v.Links, pageLink{Number: n, URL: listURL(params, n), Current: n == page.Page})
	}
	if page.Page > 1 {
		v.PrevURL = listURL(params, page.Page-1)
	}
	if page.Page < page.TotalPages {
		v.NextURL = listURL(params, page.Page+1)
	}
	if len(page.Loans) > 0 {
		first := pagination.Offset(page.Page, page.PerPage) + 1
		v.ResultRange = fmt.Sprintf("Showing %d-%d of %d", first, first+len(page.Loans)-1, page.Total)
	}
	return v
}

// detailView is the data behind the loan detail page.
type detailView struct {
	Title           string
	Loan            *domain.Loan
	Summary         amortization.Summary
	ComputedEndDate time.Time
}

func newDetailView(loan *domain.Loan) detailView {
	return detailView{
		Title:           "Loan Details",
		Loan:            loan,
		Summary:         amortization.Summarize(loan.Amount, loan.InterestRate, loan.Term),
		ComputedEndDate: loan.ComputedEndDate(),
	}
}

type formField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Hint     string
	Required bool
	Errors   []string
	Options  []selectOption
}

// formView is the data behind the create and edit forms.
type formView struct {
	Title       string
	Action      string
	SubmitLabel string
	CancelURL   string
	Fields      []formField
	Errors      []string
}

type fieldMeta struct {
	Label    string
	Type     string
	Hint     string
	Required bool
}

var formFieldMeta = map[string]fieldMeta{
	dto.FieldBorrowerName:  {Label: "Borrower Name", Type: "text", Required: true},
	dto.FieldBorrowerEmail: {Label: "Borrower Email", Type: "email", Required: true},
	dto.FieldAmount:        {Label: "Amount", Type: "text", Hint: "e.g., 1000.00", Required: true},
	dto.FieldInterestRate:  {Label: "Interest Rate (%)", Type: "text", Hint: "e.g., 5.00", Required: true},
	dto.FieldTerm:          {Label: "Term (months)", Type: "number", Required: true},
	dto.FieldStartDate:     {Label: "Start Date", Type: "date", Required: true},
	dto.FieldEndDate:       {Label: "End Date", Type: "date"},
	dto.FieldStatus:        {Label: "Status", Type: "select"},
	dto.FieldDescription:   {Label: "Description", Type: "textarea"},
}

// newFormView lays out the loan form. Create forms omit status since new
// loans always start as PENDING.
func newFormView(create bool, loanID string, values map[string]string, errs *validation.Errors) formView {
	v := formView{
		Title:       "Create New Loan",
		Action:      "/loans",
		SubmitLabel: "Create Loan",
		CancelURL:   "/loans",
	}
	if !create {
		v.Title = "Edit Loan"
		v.Action = "/loans/" + url.PathEscape(loanID)
		v.SubmitLabel = "Save Changes"
		v.CancelURL = v.Action
	}

	for _, name := range dto.LoanFields {
		if create && name == dto.FieldStatus {
			continue
		}
		meta := formFieldMeta[name]
		f := formField{
			Name:     name,
			Label:    meta.Label,
			Type:     meta.Type,
			Value:    values[name],
			Hint:     meta.Hint,
			Required: meta.Required && create,
		}
		if create && name == dto.FieldEndDate {
			f.Hint = "Defaults to start date plus term"
		}
		if name == dto.FieldStatus {
			for _, s := range domain.LoanStatuses {
				f.Options = append(f.Options, selectOption{Value: string(s), Label: s.Label(), Selected: values[name] == string(s)})
			}
		}
		if errs != nil {
			f.Errors = errs.Fields[name]
		}
		v.Fields = append(v.Fields, f)
	}
	if errs != nil {
		v.Errors = errs.Fields[validation.GeneralField]
	}
	return v
}

// loanFormValues pre-fills the edit form from a stored loan.
func loanFormValues(l *domain.Loan) map[string]string {
	return map[string]string{
		dto.FieldAmount:        l.Amount.StringFixed(2),
		dto.FieldInterestRate:  l.InterestRate.String(),
		dto.FieldTerm:          strconv.Itoa(l.Term),
		dto.FieldBorrowerName:  l.BorrowerName,
		dto.FieldBorrowerEmail: l.BorrowerEmail,
		dto.FieldDescription:   l.Description,
		dto.FieldStartDate:     l.StartDate.Format(dto.DateLayout),
		dto.FieldEndDate:       l.EndDate.Format(dto.DateLayout),
		dto.FieldStatus:        string(l.Status),
	}
}

// messageView backs the not-found and error pages.
type messageView struct {
	Title       string
	Message     string
	ActionURL   string
	ActionLabel string
}
