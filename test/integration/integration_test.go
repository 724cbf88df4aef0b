package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/GiftinTech/Loan-Calculator/internal/calculator"
	"github.com/GiftinTech/Loan-Calculator/internal/config"
	"github.com/GiftinTech/Loan-Calculator/internal/store"
	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/output"
	"github.com/GiftinTech/Loan-Calculator/pkg/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// runFromConfig loads the example configuration and calculates it exactly as
// main() does.
func runFromConfig(t *testing.T, st store.Store) *calculator.Calculation {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	validator, err := conf.Validator()
	if err != nil {
		t.Fatalf("Validator() error = %v", err)
	}

	req, err := conf.Loan.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	svc := calculator.New(zap.NewNop(), validator, st, calculator.WithStoreKey(conf.Store.Key))
	calculation, err := svc.Calculate(context.Background(), req, conf.Currency)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return calculation
}

// TestMainIntegrationBaseline tests that the application produces the known
// figures for the example configuration.
func TestMainIntegrationBaseline(t *testing.T) {
	calculation := runFromConfig(t, store.NewMemoryStore())
	result := calculation.Result

	if result.Term.TotalMonths != 360 {
		t.Fatalf("Expected 360 installments, got %d", result.Term.TotalMonths)
	}
	if len(result.Schedule) != 360 {
		t.Fatalf("Expected 360 schedule rows, got %d", len(result.Schedule))
	}

	validateBaselineValues(t, result)
}

// validateBaselineValues checks specific key values against our baseline
func validateBaselineValues(t *testing.T, result amortization.Result) {
	t.Helper()

	if got := result.Summary.MonthlyPayment.StringFixed(2); got != "1580.17" {
		t.Errorf("MonthlyPayment = %s, expected 1580.17", got)
	}
	if got := result.Summary.FirstMonthInterest.StringFixed(2); got != "1354.17" {
		t.Errorf("FirstMonthInterest = %s, expected 1354.17", got)
	}

	baselineChecks := []struct {
		date     string
		interest string
		balance  string
	}{
		{"2025-01-15", "1354.17", "249774.00"},
		{"2025-02-15", "1352.94", "249546.77"},
	}

	for _, check := range baselineChecks {
		entry := testutil.FindEntry(result.Schedule, check.date)
		if entry == nil {
			t.Errorf("Missing schedule entry for %s", check.date)
			continue
		}
		if got := entry.Interest.StringFixed(2); got != check.interest {
			t.Errorf("%s interest = %s, expected %s", check.date, got, check.interest)
		}
		if got := entry.RemainingBalance.StringFixed(2); got != check.balance {
			t.Errorf("%s balance = %s, expected %s", check.date, got, check.balance)
		}
	}

	last := result.Schedule[len(result.Schedule)-1]
	if got := last.RemainingBalance.StringFixed(2); got != "0.38" {
		t.Errorf("final balance = %s, expected 0.38 of accumulated rounding", got)
	}
	if last.Period != 360 {
		t.Errorf("final period = %d, expected 360", last.Period)
	}
	if got := result.Summary.EndDate.Format("2006-01-02"); got != "2055-01-15" {
		t.Errorf("EndDate = %s, expected 2055-01-15", got)
	}
}

func TestRedisBackedLastResult(t *testing.T) {
	server := miniredis.RunT(t)
	st, err := store.Open(config.StoreConfig{Backend: "redis", Address: server.Addr(), TTL: "1h"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()

	calculation := runFromConfig(t, st)

	svc := calculator.New(zap.NewNop(), nil, st)
	last, err := svc.Last(context.Background())
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last.ID != calculation.ID {
		t.Errorf("Last().ID = %s, expected %s", last.ID, calculation.ID)
	}
	validateBaselineValues(t, last.Result)
}

func TestCSVOutputFormat(t *testing.T) {
	calculation := runFromConfig(t, nil)

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, calculation.Result.Schedule); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	lines := 0
	var interestTotal, principalTotal decimal.Decimal
	for scanner.Scan() {
		lines++
		if lines == 1 {
			if scanner.Text() != "date,monthly_payment,interest,principal,balance" {
				t.Errorf("unexpected header %q", scanner.Text())
			}
			continue
		}

		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != 5 {
			t.Fatalf("line %d has %d fields", lines, len(fields))
		}
		payment := decimal.RequireFromString(fields[1])
		interest := decimal.RequireFromString(fields[2])
		principal := decimal.RequireFromString(fields[3])
		if !interest.Add(principal).Equal(payment) {
			t.Errorf("line %d: interest %s + principal %s != payment %s", lines, interest, principal, payment)
		}
		interestTotal = interestTotal.Add(interest)
		principalTotal = principalTotal.Add(principal)
	}

	if lines != 361 {
		t.Errorf("Expected 361 CSV lines, got %d", lines)
	}
	if diff := principalTotal.Sub(decimal.NewFromInt(250000)).Abs(); diff.GreaterThan(decimal.NewFromInt(1)) {
		t.Errorf("principal column sums to %s, too far from 250000", principalTotal)
	}
	if interestTotal.IsZero() {
		t.Error("interest column sums to zero")
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	calculation := runFromConfig(t, nil)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, calculation.Result, output.Options{Symbol: calculation.Symbol, PreviewRows: 12})
	text := buf.String()

	for _, want := range []string{
		"Principal            | $250,000.00",
		"Term                 | 30 years, 0 months",
		"Installments         | 360",
		"Monthly payment      | $1,580.17",
		"... 348 more rows (show all to display)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("pretty output missing %q", want)
		}
	}
}

func TestJSONOutputFormat(t *testing.T) {
	result, err := amortization.Calculate(testutil.ReferenceRequest())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.JSONFormat(&buf, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var record output.Record
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if record.Summary.TotalInterest != "5499.06" {
		t.Errorf("TotalInterest = %s, expected 5499.06", record.Summary.TotalInterest)
	}
	if record.Schedule[11].RemainingBalance != "0.00" {
		t.Errorf("final balance = %s, expected 0.00", record.Schedule[11].RemainingBalance)
	}
}
