package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	reAmount  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reInteger = regexp.MustCompile(`^\d+$`)
)

// ParseFields coerces a flat field-value map, as posted by an HTML form or
// flattened from a JSON body, into a typed LoanInput. Blank values are treated
// as not supplied, except description where a present key always counts so it
// can be cleared. Unknown keys are ignored.
func ParseFields(fields map[string]string) (dto.LoanInput, error) {
	var in dto.LoanInput
	errs := NewErrors()

	value := func(name string) (string, bool) {
		raw, ok := fields[name]
		if !ok {
			return "", false
		}
		raw = strings.TrimSpace(raw)
		return raw, raw != ""
	}

	if raw, ok := value(dto.FieldAmount); ok {
		if d, err := parseDecimal(raw); err != nil {
			errs.Add(dto.FieldAmount, "Please enter a valid amount (e.g., 1000.00)")
		} else {
			in.Amount = &d
		}
	}
	if raw, ok := value(dto.FieldInterestRate); ok {
		if d, err := parseDecimal(raw); err != nil {
			errs.Add(dto.FieldInterestRate, "Please enter a valid interest rate (e.g., 5.00)")
		} else {
			in.InterestRate = &d
		}
	}
	if raw, ok := value(dto.FieldTerm); ok {
		n, err := parseInteger(raw)
		if err != nil {
			errs.Add(dto.FieldTerm, "Please enter a valid term in months.")
		} else {
			in.Term = &n
		}
	}
	if raw, ok := value(dto.FieldBorrowerName); ok {
		in.BorrowerName = &raw
	} else if _, present := fields[dto.FieldBorrowerName]; present {
		// An explicitly blank name must still fail the length rule.
		empty := ""
		in.BorrowerName = &empty
	}
	if raw, ok := value(dto.FieldBorrowerEmail); ok {
		in.BorrowerEmail = &raw
	}
	if raw, present := fields[dto.FieldDescription]; present {
		desc := strings.TrimSpace(raw)
		in.Description = &desc
	}
	if raw, ok := value(dto.FieldStartDate); ok {
		if t, err := ParseDate(raw); err != nil {
			errs.Add(dto.FieldStartDate, "Please enter a valid date (YYYY-MM-DD)")
		} else {
			in.StartDate = &t
		}
	}
	if raw, ok := value(dto.FieldEndDate); ok {
		if t, err := ParseDate(raw); err != nil {
			errs.Add(dto.FieldEndDate, "Please enter a valid date (YYYY-MM-DD)")
		} else {
			in.EndDate = &t
		}
	}
	if raw, ok := value(dto.FieldStatus); ok {
		status := domain.LoanStatus(strings.ToUpper(raw))
		in.Status = &status
	}

	return in, errs.orNil()
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	if !reAmount.MatchString(raw) {
		return decimal.Zero, strconv.ErrSyntax
	}
	return decimal.NewFromString(raw)
}

func parseInteger(raw string) (int, error) {
	if !reInteger.MatchString(raw) {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(raw)
}

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp and
// returns midnight UTC of that calendar day.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dto.DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
