package calc

import (
	"github.com/shopspring/decimal"
)

// ToFraction converts a percentage to a fraction (p / 100) at DivisionScale.
// Absent becomes zero.
func ToFraction(p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return Divide(p, Of(hundred))
}

// ToPercentage converts a fraction to a percentage (f * 100).
// Absent becomes zero.
func ToPercentage(f decimal.NullDecimal) decimal.Decimal {
	if !f.Valid {
		return decimal.Zero
	}
	return f.Decimal.Mul(hundred)
}

// Complement returns the fraction left after removing p percent: (100 - p) / 100
func Complement(p decimal.NullDecimal) decimal.Decimal {
	return ToFraction(Of(hundred.Sub(NullToZero(p))))
}

// PercentageOf returns partial as a percentage of total.
// The percentage of an absent or zero total is undefined and yields Absent.
func PercentageOf(partial, total decimal.NullDecimal) decimal.NullDecimal {
	if IsNullOrZero(total) {
		return Absent
	}
	return Of(Divide(Of(NullToZero(partial)), total).Mul(hundred))
}

// PercentageChange returns the change from before to after as a percentage of before.
//
// Logic:
//   - delta = after - before, Absent if either side is absent
//   - a zero delta is "not applicable" and yields Absent
//   - otherwise delta / before * 100, with a zero before giving zero
func PercentageChange(before, after decimal.NullDecimal) decimal.NullDecimal {
	delta := SubtractNullable(after, before)
	if !delta.Valid || delta.Decimal.IsZero() {
		return Absent
	}
	return Of(Divide(delta, before).Mul(hundred))
}

// PriceWithMarkup returns cost increased by markup percent: cost * (1 + markup/100)
func PriceWithMarkup(cost, markup decimal.NullDecimal) decimal.Decimal {
	return Multiply(cost, Of(oneAmount.Add(ToFraction(markup))))
}

// PriceWithMargin returns the price at which margin percent of the price is profit.
// A margin of 100% or more has no finite positive price and yields zero.
func PriceWithMargin(cost, margin decimal.NullDecimal) decimal.Decimal {
	rest := Complement(margin)
	if !rest.IsPositive() {
		return decimal.Zero
	}
	return Divide(Of(NullToZero(cost)), Of(rest))
}

// Markup returns the profit (price - cost) as a percentage of cost.
// Absent when cost is absent or zero.
func Markup(cost, price decimal.NullDecimal) decimal.NullDecimal {
	return PercentageOf(Of(Subtract(price, cost)), cost)
}

// Margin returns the profit (price - cost) as a percentage of price.
// Absent when price is absent or zero.
func Margin(cost, price decimal.NullDecimal) decimal.NullDecimal {
	return PercentageOf(Of(Subtract(price, cost)), price)
}
