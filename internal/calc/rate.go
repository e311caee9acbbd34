package calc

import (
	"github.com/shopspring/decimal"
)

// Convert applies an exchange rate to an amount, rounded at MarkupScale.
// Absent operands count as zero.
func Convert(amount, rate decimal.NullDecimal) decimal.Decimal {
	return Multiply(amount, rate).Round(MarkupScale)
}

// InvertRate returns 1/rate at RateScale, or Absent for an absent or zero rate
func InvertRate(rate decimal.NullDecimal) decimal.NullDecimal {
	return DivideNullableScale(Of(oneAmount), rate, RateScale)
}

// CrossRate derives the rate between two currencies quoted against a common one.
// With base in units of A per unit of C and quote in units of B per unit of C,
// the result is units of B per unit of A (quote/base) at RateScale.
// Absent when base is absent or zero.
func CrossRate(base, quote decimal.NullDecimal) decimal.NullDecimal {
	return DivideNullableScale(quote, base, RateScale)
}
