package amortization

import (
	"time"

	"github.com/shopspring/decimal"
)

// intermediate precision for compounding; results are rounded to cents.
const workingPlaces = 20

var monthsPerYearPercent = decimal.NewFromInt(1200)

// MonthlyRate converts an annual percentage rate into a periodic (monthly) rate.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.DivRound(monthsPerYearPercent, workingPlaces)
}

// MonthlyPayment computes the fixed payment of a fully amortizing loan:
//
//	M = P * r / (1 - (1+r)^-n)
//
// where r is the monthly rate. A zero rate degenerates to P/n. The result is
// rounded to two decimal places; a non-positive term yields zero.
func MonthlyPayment(principal, annualPercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	r := MonthlyRate(annualPercent)
	if r.IsZero() {
		return principal.DivRound(n, 2)
	}

	// (1+r)^-n rewritten as growth/(growth-1) to stay in positive exponents.
	growth := compound(decimal.NewFromInt(1).Add(r), termMonths)
	denominator := growth.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return principal.DivRound(n, 2)
	}
	return principal.Mul(r).Mul(growth).DivRound(denominator, workingPlaces).Round(2)
}

// compound raises base to periods by repeated squaring, so the cost grows
// with the bit length of the term rather than the term itself.
func compound(base decimal.Decimal, periods int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for periods > 0 {
		if periods&1 == 1 {
			result = result.Mul(base).Round(workingPlaces)
		}
		periods >>= 1
		if periods > 0 {
			base = base.Mul(base).Round(workingPlaces)
		}
	}
	return result
}

// Summary holds the display figures derived from a loan's terms.
type Summary struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// Summarize derives the monthly payment together with the total repaid and
// the total interest over the life of the loan.
func Summarize(principal, annualPercent decimal.Decimal, termMonths int) Summary {
	monthly := MonthlyPayment(principal, annualPercent, termMonths)
	if termMonths <= 0 {
		return Summary{MonthlyPayment: monthly, TotalPayment: decimal.Zero, TotalInterest: decimal.Zero}
	}
	total := monthly.Mul(decimal.NewFromInt(int64(termMonths))).Round(2)
	return Summary{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total.Sub(principal).Round(2),
	}
}

// AddMonths adds a number of calendar months to t. When the day of month does
// not exist in the target month it is clamped to that month's last day, so
// Jan 31 + 1 month is Feb 29 in a leap year and Feb 28 otherwise. The time of
// day and location are preserved.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(first); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
