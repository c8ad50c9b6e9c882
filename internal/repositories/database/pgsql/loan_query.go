package pgsql

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/loan_tracker/internal/core/domain"
)

const loanColumns = `id, amount, interest_rate, term, borrower_name, borrower_email, description,
		start_date, end_date, status, created_at, updated_at`

// sortColumns maps each sortable field to its column. Anything outside this
// table never reaches ORDER BY.
var sortColumns = map[domain.LoanSortField]string{
	domain.SortFieldCreatedAt:    "created_at",
	domain.SortFieldBorrowerName: "borrower_name",
	domain.SortFieldAmount:       "amount",
	domain.SortFieldInterestRate: "interest_rate",
	domain.SortFieldTerm:         "term",
	domain.SortFieldStatus:       "status",
	domain.SortFieldStartDate:    "start_date",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// loanListQuery holds the statements for one filtered page of loans. Both
// statements share Args; PageArgs extends it with LIMIT and OFFSET.
type loanListQuery struct {
	CountSQL string
	PageSQL  string
	Args     []any
	PageArgs []any
}

func buildLoanListQuery(filter domain.LoanFilter) loanListQuery {
	var conditions []string
	var args []any
	argNum := 1

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(borrower_name ILIKE $%[1]d ESCAPE '\' OR borrower_email ILIKE $%[1]d ESCAPE '\' OR description ILIKE $%[1]d ESCAPE '\')`,
			argNum))
		args = append(args, "%"+escapeLike(search)+"%")
		argNum++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, string(filter.Status))
		argNum++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	column, ok := sortColumns[filter.Sort.Field]
	if !ok {
		column = sortColumns[domain.SortFieldCreatedAt]
	}
	direction := "ASC"
	if filter.Sort.Descending {
		direction = "DESC"
	}

	pageSQL := fmt.Sprintf("SELECT %s FROM loans%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		loanColumns, where, column, direction, argNum, argNum+1)

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, filter.Limit, filter.Offset)

	return loanListQuery{
		CountSQL: "SELECT COUNT(*) FROM loans" + where,
		PageSQL:  pageSQL,
		Args:     args,
		PageArgs: pageArgs,
	}
}

// buildLoanUpdate renders an UPDATE for the supplied patch fields. The
// returned statement always refreshes updated_at and returns the full row.
func buildLoanUpdate(loanID string, patch domain.LoanPatch, now time.Time) (string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.InterestRate != nil {
		add("interest_rate", *patch.InterestRate)
	}
	if patch.Term != nil {
		add("term", *patch.Term)
	}
	if patch.BorrowerName != nil {
		add("borrower_name", *patch.BorrowerName)
	}
	if patch.BorrowerEmail != nil {
		add("borrower_email", *patch.BorrowerEmail)
	}
	if patch.Description != nil {
		add("description", nullableString(*patch.Description))
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	add("updated_at", now)

	args = append(args, loanID)
	query := fmt.Sprintf("UPDATE loans SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), loanColumns)
	return query, args
}

// nullableString stores blank descriptions as NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
