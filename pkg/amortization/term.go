package amortization

import (
	"fmt"
	"math"

	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
)

// NormalizedTerm is a loan term expressed as a single month count together
// with its "N years, M months" display form.
type NormalizedTerm struct {
	TotalMonths   int `json:"totalMonths"`
	DisplayYears  int `json:"displayYears"`
	DisplayMonths int `json:"displayMonths"`
}

// NormalizeTerm converts a (years, months) pair into a NormalizedTerm. A zero
// value stands for an absent field. When both fields are set they are summed;
// deciding which of them is authoritative is left to the caller's validation
// policy.
func NormalizeTerm(years, months int) (NormalizedTerm, error) {
	if years < 0 || months < 0 {
		return NormalizedTerm{}, fmt.Errorf("%w: years=%d months=%d must not be negative", ErrInvalidTerm, years, months)
	}

	if years > (math.MaxInt-months)/constants.MonthsPerYear {
		return NormalizedTerm{}, fmt.Errorf("%w: years=%d months=%d is too long to count in months", ErrInvalidTerm, years, months)
	}

	total := years*constants.MonthsPerYear + months
	if total == 0 {
		return NormalizedTerm{}, fmt.Errorf("%w: term must be at least one month", ErrInvalidTerm)
	}

	return NormalizedTerm{
		TotalMonths:   total,
		DisplayYears:  total / constants.MonthsPerYear,
		DisplayMonths: total % constants.MonthsPerYear,
	}, nil
}

// String renders the term as "N years, M months".
func (t NormalizedTerm) String() string {
	return fmt.Sprintf("%d %s, %d %s",
		t.DisplayYears, plural(t.DisplayYears, "year", "years"),
		t.DisplayMonths, plural(t.DisplayMonths, "month", "months"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
