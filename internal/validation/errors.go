package validation

import (
	"sort"
	"strings"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
)

// GeneralField collects messages that do not belong to a single field.
const GeneralField = "_"

// Errors maps a field name to the messages describing why it was rejected.
// It satisfies errors.Is(err, apperrors.ErrValidation).
type Errors struct {
	Fields map[string][]string `json:"fields"`
}

// NewErrors returns an empty error set.
func NewErrors() *Errors {
	return &Errors{Fields: make(map[string][]string)}
}

// Add records a message for field.
func (e *Errors) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field has at least one message.
func (e *Errors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty reports whether no messages were recorded.
func (e *Errors) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// First returns the first message for field, or "".
func (e *Errors) First(field string) string {
	if e == nil || len(e.Fields[field]) == 0 {
		return ""
	}
	return e.Fields[field][0]
}

func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], ", "))
	}
	return apperrors.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Errors) Unwrap() error {
	return apperrors.ErrValidation
}

// orNil converts an empty set to a nil error so callers can return it directly.
func (e *Errors) orNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
