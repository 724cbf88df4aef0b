package amortization

import (
	"fmt"
	"math"
	"time"

	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/GiftinTech/Loan-Calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Summary holds the aggregate figures of a fixed-rate amortizing loan. All
// monetary fields are rounded to cents.
type Summary struct {
	Principal          decimal.Decimal `json:"principal"`
	AnnualRatePercent  decimal.Decimal `json:"annualRatePercent"`
	MonthlyRate        float64         `json:"monthlyRate"`
	TotalMonths        int             `json:"totalMonths"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	FirstMonthInterest decimal.Decimal `json:"firstMonthInterest"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	TotalPayment       decimal.Decimal `json:"totalPayment"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
}

// Installments returns the number of monthly payments.
func (s Summary) Installments() int {
	return s.TotalMonths
}

// MonthlyRate converts an annual percentage rate into a monthly fraction,
// e.g. 12 becomes 0.01.
func MonthlyRate(annualRatePercent float64) float64 {
	return mathutil.PercentToFraction(annualRatePercent) / constants.MonthsPerYear
}

// MonthlyPayment calculates the full-precision level payment that amortizes
// principal over totalMonths using the standard annuity formula.
func MonthlyPayment(principal, monthlyRate float64, totalMonths int) float64 {
	if totalMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(totalMonths)
	}

	growth := math.Pow(1.00+monthlyRate, float64(totalMonths))
	if math.IsInf(growth, 1) {
		// (growth-1)/growth tends to 1, leaving an interest-only payment.
		return principal * monthlyRate
	}
	return principal * growth * monthlyRate / (growth - 1.00)
}

// ComputeSummary computes the monthly payment and the aggregate totals of a
// loan. Intermediate values keep full precision; only the reported figures
// are rounded.
func ComputeSummary(principal, annualRatePercent decimal.Decimal, totalMonths int, startDate time.Time) (Summary, error) {
	if !principal.IsPositive() {
		return Summary{}, fmt.Errorf("%w: principal %s must be greater than zero", ErrInvalidAmount, principal)
	}
	if !annualRatePercent.IsPositive() {
		return Summary{}, fmt.Errorf("%w: annual rate %s must be greater than zero", ErrInvalidRate, annualRatePercent)
	}
	if totalMonths <= 0 {
		return Summary{}, fmt.Errorf("%w: %d months", ErrInvalidTerm, totalMonths)
	}
	if startDate.IsZero() {
		return Summary{}, fmt.Errorf("%w: start date is required", ErrInvalidDate)
	}

	principalF := principal.InexactFloat64()
	if math.IsInf(principalF, 0) {
		return Summary{}, fmt.Errorf("%w: principal %s is out of range", ErrInvalidAmount, principal)
	}
	monthlyRate := MonthlyRate(annualRatePercent.InexactFloat64())
	if math.IsInf(monthlyRate, 0) {
		return Summary{}, fmt.Errorf("%w: annual rate %s is out of range", ErrInvalidRate, annualRatePercent)
	}

	payment := MonthlyPayment(principalF, monthlyRate, totalMonths)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return Summary{}, fmt.Errorf("%w: monthly payment is not representable for rate %s over %d months",
			ErrInvalidRate, annualRatePercent, totalMonths)
	}

	exactPayment := decimal.NewFromFloat(payment)
	totalPayment := exactPayment.Mul(decimal.NewFromInt(int64(totalMonths)))
	totalInterest := totalPayment.Sub(principal)
	firstMonthInterest := principal.Mul(decimal.NewFromFloat(monthlyRate))

	return Summary{
		Principal:          principal,
		AnnualRatePercent:  annualRatePercent,
		MonthlyRate:        monthlyRate,
		TotalMonths:        totalMonths,
		MonthlyPayment:     mathutil.Round(exactPayment),
		FirstMonthInterest: mathutil.Round(firstMonthInterest),
		TotalInterest:      mathutil.Round(mathutil.FloorZero(totalInterest)),
		TotalPayment:       mathutil.Round(totalPayment),
		StartDate:          startDate,
		EndDate:            datetime.AddMonths(startDate, totalMonths),
	}, nil
}
