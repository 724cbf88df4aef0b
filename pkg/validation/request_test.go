package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

func validRequest() amortization.LoanRequest {
	return amortization.LoanRequest{
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: decimal.NewFromInt(10),
		TermYears:         1,
		StartDate:         "2025-01-01",
	}
}

func TestParseTermPolicy(t *testing.T) {
	tests := []struct {
		input     string
		expected  TermPolicy
		expectErr bool
	}{
		{"", TermPolicyExclusive, false},
		{"exclusive", TermPolicyExclusive, false},
		{" Additive ", TermPolicyAdditive, false},
		{"either", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTermPolicy(tt.input)
		if (err != nil) != tt.expectErr {
			t.Errorf("ParseTermPolicy(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseTermPolicy(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestRequestValidatorExclusive(t *testing.T) {
	validator := NewRequestValidator()

	tests := []struct {
		name     string
		mutate   func(r *amortization.LoanRequest)
		expected []error
	}{
		{
			name:   "Valid years only",
			mutate: func(r *amortization.LoanRequest) {},
		},
		{
			name: "Valid months only",
			mutate: func(r *amortization.LoanRequest) {
				r.TermYears = 0
				r.TermMonths = 18
			},
		},
		{
			name:   "Principal at minimum",
			mutate: func(r *amortization.LoanRequest) { r.Principal = decimal.NewFromInt(500) },
		},
		{
			name:     "Principal below minimum",
			mutate:   func(r *amortization.LoanRequest) { r.Principal = decimal.NewFromInt(499) },
			expected: []error{amortization.ErrInvalidAmount},
		},
		{
			name:     "Negative principal",
			mutate:   func(r *amortization.LoanRequest) { r.Principal = decimal.NewFromInt(-1) },
			expected: []error{amortization.ErrInvalidAmount},
		},
		{
			name:     "Zero rate",
			mutate:   func(r *amortization.LoanRequest) { r.AnnualRatePercent = decimal.Zero },
			expected: []error{amortization.ErrInvalidRate},
		},
		{
			name:     "Both term fields",
			mutate:   func(r *amortization.LoanRequest) { r.TermMonths = 6 },
			expected: []error{amortization.ErrInvalidTerm},
		},
		{
			name:     "Neither term field",
			mutate:   func(r *amortization.LoanRequest) { r.TermYears = 0 },
			expected: []error{amortization.ErrInvalidTerm},
		},
		{
			name:     "Negative months",
			mutate:   func(r *amortization.LoanRequest) { r.TermMonths = -3 },
			expected: []error{amortization.ErrInvalidTerm},
		},
		{
			name: "Term at maximum",
			mutate: func(r *amortization.LoanRequest) {
				r.TermYears = 0
				r.TermMonths = 1200
			},
		},
		{
			name: "Term above maximum",
			mutate: func(r *amortization.LoanRequest) {
				r.TermYears = 0
				r.TermMonths = 3000000
			},
			expected: []error{amortization.ErrInvalidTerm},
		},
		{
			name:     "Years that wrap to twelve months",
			mutate:   func(r *amortization.LoanRequest) { r.TermYears = math.MaxInt/2 + 2 },
			expected: []error{amortization.ErrInvalidTerm},
		},
		{
			name:     "Bad date",
			mutate:   func(r *amortization.LoanRequest) { r.StartDate = "2025-13-01" },
			expected: []error{amortization.ErrInvalidDate},
		},
		{
			name: "Everything wrong",
			mutate: func(r *amortization.LoanRequest) {
				r.Principal = decimal.Zero
				r.AnnualRatePercent = decimal.NewFromInt(-5)
				r.TermYears = 0
				r.StartDate = ""
			},
			expected: []error{
				amortization.ErrInvalidAmount,
				amortization.ErrInvalidRate,
				amortization.ErrInvalidTerm,
				amortization.ErrInvalidDate,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := validator.Validate(req)

			if len(tt.expected) == 0 {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if got := len(multierr.Errors(err)); got != len(tt.expected) {
				t.Errorf("Validate() returned %d errors, expected %d: %v", got, len(tt.expected), err)
			}
			for _, want := range tt.expected {
				if !errors.Is(err, want) {
					t.Errorf("Validate() error = %v, expected it to match %v", err, want)
				}
			}
		})
	}
}

func TestRequestValidatorAdditive(t *testing.T) {
	validator := &RequestValidator{MinimumPrincipal: decimal.NewFromInt(1), TermPolicy: TermPolicyAdditive}

	req := validRequest()
	req.TermMonths = 6
	if err := validator.Validate(req); err != nil {
		t.Errorf("Validate() with both term fields unexpected error: %v", err)
	}

	req.Principal = decimal.NewFromInt(10)
	if err := validator.Validate(req); err != nil {
		t.Errorf("Validate() with custom minimum unexpected error: %v", err)
	}

	req.TermYears = 0
	req.TermMonths = 0
	if err := validator.Validate(req); !errors.Is(err, amortization.ErrInvalidTerm) {
		t.Errorf("Validate() error = %v, expected ErrInvalidTerm", err)
	}

	req.TermYears = math.MaxInt / 12
	req.TermMonths = 12
	if err := validator.Validate(req); !errors.Is(err, amortization.ErrInvalidTerm) {
		t.Errorf("Validate() with overflowing term error = %v, expected ErrInvalidTerm", err)
	}
}

func TestRequestValidatorMaximumTerm(t *testing.T) {
	req := validRequest()
	req.TermYears = 0
	req.TermMonths = 1201

	if err := NewRequestValidator().Validate(req); !errors.Is(err, amortization.ErrInvalidTerm) {
		t.Errorf("Validate() with default maximum error = %v, expected ErrInvalidTerm", err)
	}

	validator := NewRequestValidator()
	validator.MaximumTermMonths = 0
	if err := validator.Validate(req); err != nil {
		t.Errorf("Validate() with no maximum unexpected error: %v", err)
	}

	validator.MaximumTermMonths = 24
	req.TermMonths = 25
	if err := validator.Validate(req); !errors.Is(err, amortization.ErrInvalidTerm) {
		t.Errorf("Validate() with maximum of 24 error = %v, expected ErrInvalidTerm", err)
	}
}

func TestRequestValidatorWarnings(t *testing.T) {
	validator := NewRequestValidator()

	if warnings := validator.Warnings(validRequest()); len(warnings) != 0 {
		t.Errorf("Warnings() = %v, expected none", warnings)
	}

	req := validRequest()
	req.AnnualRatePercent = decimal.NewFromInt(48)
	req.TermYears = 45
	if warnings := validator.Warnings(req); len(warnings) != 2 {
		t.Errorf("Warnings() = %v, expected 2 warnings", warnings)
	}

	req.AnnualRatePercent = decimal.NewFromInt(10)
	req.TermYears = math.MaxInt/2 + 2
	if warnings := validator.Warnings(req); len(warnings) != 0 {
		t.Errorf("Warnings() for an overflowing term = %v, expected none", warnings)
	}
}
