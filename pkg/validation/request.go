package validation

import (
	"fmt"
	"strings"

	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// TermPolicy decides how the years and months fields of a request combine.
type TermPolicy string

const (
	// TermPolicyExclusive requires exactly one of years or months to be positive.
	TermPolicyExclusive TermPolicy = constants.TermPolicyExclusive

	// TermPolicyAdditive accepts both fields and sums them.
	TermPolicyAdditive TermPolicy = constants.TermPolicyAdditive
)

// Warning thresholds.
const (
	highRateWarningPercent = 36
	longTermWarningMonths  = 40 * constants.MonthsPerYear
)

// ParseTermPolicy parses a policy name; an empty string selects the exclusive policy.
func ParseTermPolicy(s string) (TermPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", constants.TermPolicyExclusive:
		return TermPolicyExclusive, nil
	case constants.TermPolicyAdditive:
		return TermPolicyAdditive, nil
	}
	return "", fmt.Errorf("expected term policy of %s or %s, got %s",
		constants.TermPolicyExclusive, constants.TermPolicyAdditive, s)
}

// RequestValidator checks a LoanRequest before it reaches the amortization
// engine. Each violation wraps the matching amortization error so callers can
// use errors.Is on the combined result.
type RequestValidator struct {
	MinimumPrincipal decimal.Decimal
	TermPolicy       TermPolicy

	// MaximumTermMonths caps the schedule length. Zero disables the cap.
	MaximumTermMonths int
}

// NewRequestValidator returns a validator with the default minimum principal,
// the default maximum term and the exclusive term policy.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		MinimumPrincipal:  decimal.RequireFromString(constants.DefaultMinimumPrincipal),
		TermPolicy:        TermPolicyExclusive,
		MaximumTermMonths: constants.DefaultMaximumTermMonths,
	}
}

// Validate returns every violation found in req, combined with multierr, or
// nil when the request can be calculated.
func (v *RequestValidator) Validate(req amortization.LoanRequest) error {
	var err error

	if !req.Principal.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("%w: principal must be greater than zero", amortization.ErrInvalidAmount))
	} else if req.Principal.LessThan(v.MinimumPrincipal) {
		err = multierr.Append(err, fmt.Errorf("%w: principal %s is below the minimum of %s",
			amortization.ErrInvalidAmount, req.Principal, v.MinimumPrincipal))
	}

	if !req.AnnualRatePercent.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("%w: annual rate must be greater than zero", amortization.ErrInvalidRate))
	}

	err = multierr.Append(err, v.validateTerm(req.TermYears, req.TermMonths))

	if _, dateErr := datetime.ParseDate(req.StartDate); dateErr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %q", amortization.ErrInvalidDate, req.StartDate))
	}

	return err
}

func (v *RequestValidator) validateTerm(years, months int) error {
	if years < 0 || months < 0 {
		return fmt.Errorf("%w: years and months must not be negative", amortization.ErrInvalidTerm)
	}

	switch v.TermPolicy {
	case TermPolicyAdditive:
		if years == 0 && months == 0 {
			return fmt.Errorf("%w: years or months is required", amortization.ErrInvalidTerm)
		}
	default:
		if (years > 0) == (months > 0) {
			return fmt.Errorf("%w: exactly one of years or months must be set", amortization.ErrInvalidTerm)
		}
	}

	term, err := amortization.NormalizeTerm(years, months)
	if err != nil {
		return err
	}
	if v.MaximumTermMonths > 0 && term.TotalMonths > v.MaximumTermMonths {
		return fmt.Errorf("%w: term of %d months exceeds the maximum of %d months",
			amortization.ErrInvalidTerm, term.TotalMonths, v.MaximumTermMonths)
	}
	return nil
}

// Warnings reports unusual but valid requests.
func (v *RequestValidator) Warnings(req amortization.LoanRequest) []string {
	var warnings []string

	if req.AnnualRatePercent.GreaterThan(decimal.NewFromInt(highRateWarningPercent)) {
		warnings = append(warnings, fmt.Sprintf("annual rate %s%% is unusually high; payments may be nearly interest only",
			req.AnnualRatePercent))
	}

	if term, err := amortization.NormalizeTerm(req.TermYears, req.TermMonths); err == nil && term.TotalMonths > longTermWarningMonths {
		warnings = append(warnings, fmt.Sprintf("term of %d months is longer than %d years; the final balance may carry rounding",
			term.TotalMonths, longTermWarningMonths/constants.MonthsPerYear))
	}

	return warnings
}
