// Package calc is the numeric engine behind every cost, margin and markup figure.
//
// Amounts are shopspring decimals. An optional amount is a decimal.NullDecimal
// whose Valid flag is false when the value is absent. Absent is not zero, but
// the lenient operators treat it as zero on input and never fail. Operators
// come in named families (zero-filling, nullable, absent-if-all-null) and the
// families are not interchangeable.
//
// Everything here is a pure function over immutable values and is safe for
// concurrent use.
package calc

import (
	"github.com/shopspring/decimal"
)

var (
	// Absent is the "no amount known" value
	Absent = decimal.NullDecimal{}

	hundred   = decimal.NewFromInt(100)
	minusOne  = decimal.NewFromInt(-1)
	oneAmount = decimal.NewFromInt(1)
)

// Of wraps a present amount
func Of(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// OfInt wraps a present integer amount
func OfInt(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// MustParse wraps a present amount parsed from s, panicking on malformed input
func MustParse(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// NullToZero returns a's value, or zero when a is absent
func NullToZero(a decimal.NullDecimal) decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal
}

// IsNullOrZero reports whether a is absent or numerically zero
func IsNullOrZero(a decimal.NullDecimal) bool {
	return !a.Valid || a.Decimal.IsZero()
}

// IsStrictlyPositive reports whether a is present and greater than zero
func IsStrictlyPositive(a decimal.NullDecimal) bool {
	return NullToZero(a).IsPositive()
}

// IsNegative reports whether a is present and below zero
func IsNegative(a decimal.NullDecimal) bool {
	return a.Valid && a.Decimal.IsNegative()
}

// Multiply returns a*b with absent operands as zero
func Multiply(a, b decimal.NullDecimal) decimal.Decimal {
	return NullToZero(a).Mul(NullToZero(b))
}

// Divide returns dividend/divisor rounded HALF_UP at DivisionScale.
// An absent dividend, or an absent or zero divisor, yields zero.
func Divide(dividend, divisor decimal.NullDecimal) decimal.Decimal {
	return DivideScale(dividend, divisor, DivisionScale)
}

// DivideScale is Divide at an explicit scale.
// Panics with ErrInvalidScale if scale is negative.
func DivideScale(dividend, divisor decimal.NullDecimal, scale int32) decimal.Decimal {
	q := divide(dividend, divisor, scale)
	return NullToZero(q)
}

// DivideNullable returns dividend/divisor rounded HALF_UP at DivisionScale.
// An absent dividend, or an absent or zero divisor, yields Absent.
func DivideNullable(dividend, divisor decimal.NullDecimal) decimal.NullDecimal {
	return divide(dividend, divisor, DivisionScale)
}

// DivideNullableScale is DivideNullable at an explicit scale
func DivideNullableScale(dividend, divisor decimal.NullDecimal, scale int32) decimal.NullDecimal {
	return divide(dividend, divisor, scale)
}

func divide(dividend, divisor decimal.NullDecimal, scale int32) decimal.NullDecimal {
	mustScale(scale)
	if !dividend.Valid || IsNullOrZero(divisor) {
		return Absent
	}
	return Of(dividend.Decimal.DivRound(divisor.Decimal, scale))
}

// Negate returns -a, with absent as zero
func Negate(a decimal.NullDecimal) decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal.Mul(minusOne)
}

// Sum adds the values, treating absent as zero. Sum() is zero.
func Sum(values ...decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(NullToZero(v))
	}
	return total
}

// SumNullable adds the values, or returns Absent if any value is absent
func SumNullable(values ...decimal.NullDecimal) decimal.NullDecimal {
	if anyAbsent(values) {
		return Absent
	}
	return Of(Sum(values...))
}

// SumNullableIfAllNull returns Absent when every value is absent (including
// an empty argument list), otherwise the zero-filling Sum.
func SumNullableIfAllNull(values ...decimal.NullDecimal) decimal.NullDecimal {
	if allAbsent(values) {
		return Absent
	}
	return Of(Sum(values...))
}

// Subtract folds left from the first value, subtracting the rest.
// Absent entries count as zero. Subtract() is zero.
func Subtract(values ...decimal.NullDecimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	result := NullToZero(values[0])
	for _, v := range values[1:] {
		result = result.Sub(NullToZero(v))
	}
	return result
}

// SubtractNullable is Subtract, or Absent if any value is absent
func SubtractNullable(values ...decimal.NullDecimal) decimal.NullDecimal {
	if anyAbsent(values) {
		return Absent
	}
	return Of(Subtract(values...))
}

// Min returns the smallest value with absent as zero.
// Panics with ErrNoValues when called without arguments.
func Min(values ...decimal.NullDecimal) decimal.Decimal {
	if len(values) == 0 {
		panic(ErrNoValues)
	}
	result := NullToZero(values[0])
	for _, v := range values[1:] {
		if d := NullToZero(v); d.LessThan(result) {
			result = d
		}
	}
	return result
}

// Max returns the largest value with absent as zero.
// Panics with ErrNoValues when called without arguments.
func Max(values ...decimal.NullDecimal) decimal.Decimal {
	if len(values) == 0 {
		panic(ErrNoValues)
	}
	result := NullToZero(values[0])
	for _, v := range values[1:] {
		if d := NullToZero(v); d.GreaterThan(result) {
			result = d
		}
	}
	return result
}

func anyAbsent(values []decimal.NullDecimal) bool {
	for _, v := range values {
		if !v.Valid {
			return true
		}
	}
	return false
}

func allAbsent(values []decimal.NullDecimal) bool {
	for _, v := range values {
		if v.Valid {
			return false
		}
	}
	return true
}
