// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
	"github.com/GiftinTech/Loan-Calculator/pkg/format"
)

// CsvHeader is the column layout of the schedule export.
var CsvHeader = []string{"date", "monthly_payment", "interest", "principal", "balance"}

// Options controls the human-readable output.
type Options struct {
	Symbol      string
	ShowAll     bool
	PreviewRows int
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result amortization.Result, opts Options) {
	summary := result.Summary

	fmt.Fprintf(w, "--- Loan summary ---\n")
	fmt.Fprintf(w, "Principal            | %s\n", format.Currency(summary.Principal, opts.Symbol))
	fmt.Fprintf(w, "Annual interest rate | %s%%\n", summary.AnnualRatePercent)
	fmt.Fprintf(w, "Term                 | %s\n", result.Term)
	fmt.Fprintf(w, "Installments         | %d\n", summary.Installments())
	fmt.Fprintf(w, "Monthly payment      | %s\n", format.Currency(summary.MonthlyPayment, opts.Symbol))
	fmt.Fprintf(w, "First month interest | %s\n", format.Currency(summary.FirstMonthInterest, opts.Symbol))
	fmt.Fprintf(w, "Total interest       | %s\n", format.Currency(summary.TotalInterest, opts.Symbol))
	fmt.Fprintf(w, "Total payment        | %s\n", format.Currency(summary.TotalPayment, opts.Symbol))
	fmt.Fprintf(w, "Start date           | %s\n", datetime.FormatDate(summary.StartDate))
	fmt.Fprintf(w, "End date             | %s\n", datetime.FormatDate(summary.EndDate))
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "--- Amortization schedule ---\n")
	fmt.Fprintf(w, "%-5s | %-10s | %16s | %16s | %16s | %16s\n", "#", "Date", "Payment", "Interest", "Principal", "Balance")
	fmt.Fprintf(w, "%-5s | %-10s | %16s | %16s | %16s | %16s\n", "_", "____", "_______", "________", "_________", "_______")

	rows := result.Schedule
	hidden := 0
	if !opts.ShowAll && opts.PreviewRows > 0 && len(rows) > opts.PreviewRows {
		hidden = len(rows) - opts.PreviewRows
		rows = rows[:opts.PreviewRows]
	}

	for _, entry := range rows {
		fmt.Fprintf(w, "%-5d | %-10s | %16s | %16s | %16s | %16s\n",
			entry.Period,
			datetime.FormatDate(entry.Date),
			format.Currency(entry.MonthlyPayment, opts.Symbol),
			format.Currency(entry.Interest, opts.Symbol),
			format.Currency(entry.Principal, opts.Symbol),
			format.Currency(entry.RemainingBalance, opts.Symbol),
		)
	}
	if hidden > 0 {
		fmt.Fprintf(w, "... %d more rows (show all to display)\n", hidden)
	}

	interest, principal := amortization.Totals(result.Schedule)
	fmt.Fprintf(w, "%-5s | %-10s | %16s | %16s | %16s | %16s\n", "Total", "", "",
		format.Currency(interest, opts.Symbol), format.Currency(principal, opts.Symbol), "")
}

// CsvFormat outputs the schedule in comma-separated value format, one row per
// entry.
func CsvFormat(w io.Writer, entries []amortization.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, entry := range entries {
		record := NewEntryRecord(entry)
		row := []string{record.Date, record.MonthlyPayment, record.Interest, record.Principal, record.RemainingBalance}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", entry.Period, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV export as a string.
func CsvString(entries []amortization.Entry) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, entries); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs the export record of result as indented JSON.
func JSONFormat(w io.Writer, result amortization.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewRecord(result)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
