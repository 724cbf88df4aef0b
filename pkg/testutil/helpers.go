// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/shopspring/decimal"
)

// ReferenceRequest is a 100,000 loan at 10% over 12 months starting
// 2025-01-01. Its monthly payment is 8,791.59.
func ReferenceRequest() amortization.LoanRequest {
	return amortization.LoanRequest{
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: decimal.NewFromInt(10),
		TermMonths:        12,
		StartDate:         "2025-01-01",
	}
}

// FindEntry finds the schedule entry dated date (YYYY-MM-DD).
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(entries []amortization.Entry, date string) *amortization.Entry {
	for i := range entries {
		if datetime.FormatDate(entries[i].Date) == date {
			return &entries[i]
		}
	}
	return nil
}
