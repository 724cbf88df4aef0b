// Package amortization computes fixed-rate amortizing loan figures: the term
// normalization, the level monthly payment with its aggregate totals, and the
// period-by-period schedule. Everything here is a pure function of its inputs.
package amortization

import (
	"fmt"

	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/shopspring/decimal"
)

// LoanRequest carries the user-supplied loan parameters.
type LoanRequest struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermYears         int             `json:"termYears,omitempty"`
	TermMonths        int             `json:"termMonths,omitempty"`
	StartDate         string          `json:"startDate"`
}

// Result is a complete calculation: the normalized term, the summary and the
// schedule.
type Result struct {
	Term     NormalizedTerm `json:"term"`
	Summary  Summary        `json:"summary"`
	Schedule []Entry        `json:"schedule"`
}

// Calculate runs the whole engine for one request. It either returns a full
// result or an error; no partial schedule is ever produced.
func Calculate(req LoanRequest) (Result, error) {
	startDate, err := datetime.ParseDate(req.StartDate)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, req.StartDate, err)
	}

	term, err := NormalizeTerm(req.TermYears, req.TermMonths)
	if err != nil {
		return Result{}, err
	}

	summary, err := ComputeSummary(req.Principal, req.AnnualRatePercent, term.TotalMonths, startDate)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Term:     term,
		Summary:  summary,
		Schedule: GenerateSchedule(summary, term.TotalMonths),
	}, nil
}
