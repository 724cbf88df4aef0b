package output

import (
	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/datetime"
)

// Record is the export form of a calculation: amounts as fixed two-decimal
// strings and dates as YYYY-MM-DD.
type Record struct {
	Term     TermRecord    `json:"term"`
	Summary  SummaryRecord `json:"summary"`
	Schedule []EntryRecord `json:"schedule"`
}

// TermRecord describes the normalized term.
type TermRecord struct {
	TotalMonths   int    `json:"totalMonths"`
	DisplayYears  int    `json:"displayYears"`
	DisplayMonths int    `json:"displayMonths"`
	Display       string `json:"display"`
}

// SummaryRecord carries every summary field plus the installment count.
type SummaryRecord struct {
	Principal          string  `json:"principal"`
	AnnualRatePercent  string  `json:"annualRatePercent"`
	MonthlyRate        float64 `json:"monthlyRate"`
	MonthlyPayment     string  `json:"monthlyPayment"`
	FirstMonthInterest string  `json:"firstMonthInterest"`
	TotalInterest      string  `json:"totalInterest"`
	TotalPayment       string  `json:"totalPayment"`
	Installments       int     `json:"installments"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
}

// EntryRecord is one schedule row.
type EntryRecord struct {
	Period           int    `json:"period"`
	Date             string `json:"date"`
	MonthlyPayment   string `json:"monthlyPayment"`
	Interest         string `json:"interest"`
	Principal        string `json:"principal"`
	RemainingBalance string `json:"remainingBalance"`
}

// NewRecord converts a calculation result into its export form.
func NewRecord(result amortization.Result) Record {
	summary := result.Summary
	record := Record{
		Term: TermRecord{
			TotalMonths:   result.Term.TotalMonths,
			DisplayYears:  result.Term.DisplayYears,
			DisplayMonths: result.Term.DisplayMonths,
			Display:       result.Term.String(),
		},
		Summary: SummaryRecord{
			Principal:          summary.Principal.StringFixed(constants.DecimalPlaces),
			AnnualRatePercent:  summary.AnnualRatePercent.String(),
			MonthlyRate:        summary.MonthlyRate,
			MonthlyPayment:     summary.MonthlyPayment.StringFixed(constants.DecimalPlaces),
			FirstMonthInterest: summary.FirstMonthInterest.StringFixed(constants.DecimalPlaces),
			TotalInterest:      summary.TotalInterest.StringFixed(constants.DecimalPlaces),
			TotalPayment:       summary.TotalPayment.StringFixed(constants.DecimalPlaces),
			Installments:       summary.Installments(),
			StartDate:          datetime.FormatDate(summary.StartDate),
			EndDate:            datetime.FormatDate(summary.EndDate),
		},
		Schedule: make([]EntryRecord, 0, len(result.Schedule)),
	}

	for _, entry := range result.Schedule {
		record.Schedule = append(record.Schedule, NewEntryRecord(entry))
	}
	return record
}

// NewEntryRecord converts one schedule entry.
func NewEntryRecord(entry amortization.Entry) EntryRecord {
	return EntryRecord{
		Period:           entry.Period,
		Date:             datetime.FormatDate(entry.Date),
		MonthlyPayment:   entry.MonthlyPayment.StringFixed(constants.DecimalPlaces),
		Interest:         entry.Interest.StringFixed(constants.DecimalPlaces),
		Principal:        entry.Principal.StringFixed(constants.DecimalPlaces),
		RemainingBalance: entry.RemainingBalance.StringFixed(constants.DecimalPlaces),
	}
}
