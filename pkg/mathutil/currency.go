// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves are rounded away from zero.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// FloorZero returns val, or zero when val is negative.
func FloorZero(val decimal.Decimal) decimal.Decimal {
	if val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// Sum adds up the given values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// PercentToFraction converts a percentage such as 10 into 0.10.
func PercentToFraction(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
