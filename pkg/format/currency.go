// Package format renders and parses currency amounts for display.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnsupportedCurrency is returned for codes that are not ISO 4217 currencies.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

var printer = message.NewPrinter(language.English)

// maxGroupedDigits keeps integer parts within int64 for the message printer.
const maxGroupedDigits = 18

// Symbol returns the narrow display symbol for an ISO 4217 code, e.g. "$" for
// USD or "€" for EUR. Codes without a dedicated symbol render as the code.
func Symbol(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		code = constants.DefaultCurrency
	}
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrUnsupportedCurrency, code, err)
	}
	return fmt.Sprint(currency.NarrowSymbol(unit)), nil
}

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-$1,234.56").
func Currency(amount decimal.Decimal, symbol string) string {
	formatted := formatPositiveCurrency(amount.Abs())
	if amount.IsNegative() && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

func formatPositiveCurrency(value decimal.Decimal) string {
	fixed := value.StringFixed(constants.DecimalPlaces)
	intPart, decPart, _ := strings.Cut(fixed, ".")

	if len(intPart) <= maxGroupedDigits {
		whole, err := decimal.NewFromString(intPart)
		if err == nil {
			return printer.Sprintf("%d", whole.IntPart()) + "." + decPart
		}
	}
	return groupDigits(intPart) + "." + decPart
}

func groupDigits(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}

// ParseAmount parses a user-entered amount. Thousands separators, spaces and
// a leading currency symbol are ignored, so "$100,000.50" and "100 000.50"
// are both accepted.
func ParseAmount(input string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == ',' || r == '_' || unicode.IsSpace(r):
			return -1
		case unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, input)

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	return amount, nil
}
