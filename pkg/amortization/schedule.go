package amortization

import (
	"time"

	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/GiftinTech/Loan-Calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Entry is one period of an amortization schedule.
type Entry struct {
	Period           int             `json:"period"`
	Date             time.Time       `json:"date"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// GenerateSchedule walks the loan month by month starting at the summary's
// start date and returns one entry per period. Every monetary value is rounded
// to cents as it is produced so that interest + principal equals the payment on
// each row. The final balance carries the accumulated rounding and is floored
// at zero, not forced to it.
//
// The summary is assumed to come from ComputeSummary.
func GenerateSchedule(summary Summary, totalMonths int) []Entry {
	if totalMonths <= 0 {
		return nil
	}

	schedule := make([]Entry, 0, totalMonths)
	rate := decimal.NewFromFloat(summary.MonthlyRate)
	balance := summary.Principal

	for i := 0; i < totalMonths; i++ {
		interest := mathutil.Round(balance.Mul(rate))
		principal := mathutil.Round(summary.MonthlyPayment.Sub(interest))
		balance = mathutil.Round(balance.Sub(principal))

		schedule = append(schedule, Entry{
			Period:           i + 1,
			Date:             datetime.AddMonths(summary.StartDate, i),
			MonthlyPayment:   summary.MonthlyPayment,
			Interest:         interest,
			Principal:        principal,
			RemainingBalance: mathutil.FloorZero(balance),
		})
	}

	return schedule
}

// Totals sums the interest and principal columns of a schedule.
func Totals(entries []Entry) (interest, principal decimal.Decimal) {
	interests := make([]decimal.Decimal, len(entries))
	principals := make([]decimal.Decimal, len(entries))
	for i, entry := range entries {
		interests[i] = entry.Interest
		principals[i] = entry.Principal
	}
	return mathutil.Sum(interests...), mathutil.Sum(principals...)
}
