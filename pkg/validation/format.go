// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"golang.org/x/text/currency"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("currency code is required")
	}
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("unsupported currency %q: %w", code, err)
	}
	return nil
}
