package validation

import (
	"math"
	"reflect"

	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Mode selects how missing fields are treated.
type Mode int

const (
	// ModeCreate requires every non-optional field.
	ModeCreate Mode = iota
	// ModeUpdate checks only the fields that were supplied.
	ModeUpdate
)

// Check is a single validator tag and the message reported when it fails.
type Check struct {
	Tag     string
	Message string
}

// FieldRule describes the constraints of one loan field.
type FieldRule struct {
	Field        string
	Label        string
	Optional     bool // may be omitted on create
	SkipOnCreate bool
	Checks       []Check
	value        func(dto.LoanInput) (any, bool)
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// LoanRules is the loan schema, evaluated uniformly in both modes.
var LoanRules = []FieldRule{
	{
		Field: dto.FieldAmount, Label: "Amount",
		Checks: []Check{
			{"gt=0", "Amount must be positive"},
			{"lte=999999999999.99", "Amount must be at most 999,999,999,999.99"},
			{"dec2", "Amount must have at most 2 decimal places"},
		},
		value: func(in dto.LoanInput) (any, bool) { return deref(in.Amount) },
	},
	{
		Field: dto.FieldInterestRate, Label: "Interest rate",
		Checks: []Check{
			{"gte=0", "Interest rate must be 0 or greater"},
			{"lte=100", "Interest rate must be 100 or less"},
			{"dec2", "Interest rate must have at most 2 decimal places"},
		},
		value: func(in dto.LoanInput) (any, bool) { return deref(in.InterestRate) },
	},
	{
		Field: dto.FieldTerm, Label: "Term",
		Checks: []Check{
			{"gt=0", "Term must be positive"},
			{"lte=1200", "Term must be 1200 months or less"},
		},
		value: func(in dto.LoanInput) (any, bool) { return deref(in.Term) },
	},
	{
		Field: dto.FieldBorrowerName, Label: "Borrower name",
		Checks: []Check{
			{"min=2", "Borrower name must be at least 2 characters."},
			{"max=255", "Borrower name must be at most 255 characters."},
		},
		value: func(in dto.LoanInput) (any, bool) { return deref(in.BorrowerName) },
	},
	{
		Field: dto.FieldBorrowerEmail, Label: "Borrower email",
		Checks: []Check{{"email", "Invalid email address"}},
		value:  func(in dto.LoanInput) (any, bool) { return deref(in.BorrowerEmail) },
	},
	{
		Field: dto.FieldDescription, Label: "Description", Optional: true,
		value: func(in dto.LoanInput) (any, bool) { return deref(in.Description) },
	},
	{
		Field: dto.FieldStartDate, Label: "Start date",
		value: func(in dto.LoanInput) (any, bool) { return deref(in.StartDate) },
	},
	{
		Field: dto.FieldEndDate, Label: "End date",
		value: func(in dto.LoanInput) (any, bool) { return deref(in.EndDate) },
	},
	{
		// New loans are always PENDING, so a supplied status is only checked on update.
		Field: dto.FieldStatus, Label: "Status", Optional: true, SkipOnCreate: true,
		Checks: []Check{{"oneof=PENDING ACTIVE PAID DEFAULTED CANCELLED", "Invalid status"}},
		value:  func(in dto.LoanInput) (any, bool) { return deref(in.Status) },
	},
}

// LoanValidator evaluates LoanRules with go-playground/validator.
type LoanValidator struct {
	v     *validator.Validate
	rules []FieldRule
}

// NewLoanValidator builds a validator that understands decimal values.
func NewLoanValidator() *LoanValidator {
	v := validator.New()

	// Compare decimals numerically in gt/gte/lte tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// max 2 decimal places; the tolerance widens with the float spacing near
	// the NUMERIC(14,2) ceiling.
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		ulp := math.Nextafter(math.Abs(f), math.Inf(1)) - math.Abs(f)
		return math.Abs(f-(math.Round(f*100)/100)) <= math.Max(1e-9, 4*ulp)
	})

	return &LoanValidator{v: v, rules: LoanRules}
}

// Validate checks in against the loan schema. It returns *Errors when any rule
// fails and nil otherwise; it never panics on user input.
func (lv *LoanValidator) Validate(in dto.LoanInput, mode Mode) error {
	errs := NewErrors()

	for _, rule := range lv.rules {
		if rule.SkipOnCreate && mode == ModeCreate {
			continue
		}
		val, ok := rule.value(in)
		if !ok {
			if mode == ModeCreate && !rule.Optional {
				errs.Add(rule.Field, rule.Label+" is required")
			}
			continue
		}
		for _, check := range rule.Checks {
			if err := lv.v.Var(val, check.Tag); err != nil {
				errs.Add(rule.Field, check.Message)
			}
		}
	}

	// End date must follow start date whenever both are known.
	if in.StartDate != nil && in.EndDate != nil && !in.EndDate.After(*in.StartDate) {
		errs.Add(dto.FieldEndDate, "End date must be after start date")
	}

	return errs.orNil()
}
