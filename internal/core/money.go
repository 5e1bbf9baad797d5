// Package core provides the budget category model and money handling.
//
// This file contains the milliunit normalization used for every amount
// coming from the budgeting API, plus the two-decimal display formatting.
package core

import (
	"github.com/shopspring/decimal"
)

// MilliunitsPerUnit is the divisor between API milliunits and base currency.
const MilliunitsPerUnit = 1000

var milliunitDivisor = decimal.NewFromInt(MilliunitsPerUnit)

// FromMilliunits converts an integer milliunit amount to base currency.
//
// No rounding is applied: 1234 milliunits becomes exactly 1.234.
func FromMilliunits(m int64) decimal.Decimal {
	return decimal.NewFromInt(m).Div(milliunitDivisor)
}

// Normalize converts a raw API record into CategoryData.
// It is pure and cannot fail.
func Normalize(r CategoryRecord) CategoryData {
	return CategoryData{
		Name:     r.Name,
		Budgeted: FromMilliunits(r.Budgeted),
		Balance:  FromMilliunits(r.Balance),
		Activity: FromMilliunits(r.Activity),
	}
}

// NormalizeAll normalizes records preserving their order.
func NormalizeAll(records []CategoryRecord) []CategoryData {
	out := make([]CategoryData, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}
	return out
}

// FormatAmount renders an amount with exactly two decimals (e.g. "300.00").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency renders an amount as dollars, sign first (e.g. "-$20.50").
func FormatCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
