package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NullPolicy selects how an aggregation treats absent values
type NullPolicy int

const (
	// ZeroFill treats absent values as zero
	ZeroFill NullPolicy = iota
	// AbsentIfAnyNull yields Absent as soon as one value is absent
	AbsentIfAnyNull
	// AbsentIfAllNull yields Absent only when every value is absent
	AbsentIfAllNull
)

// String returns the string representation of the policy
func (p NullPolicy) String() string {
	switch p {
	case ZeroFill:
		return "zero-fill"
	case AbsentIfAnyNull:
		return "absent-if-any-null"
	case AbsentIfAllNull:
		return "absent-if-all-null"
	default:
		return fmt.Sprintf("NullPolicy(%d)", int(p))
	}
}

// IsValid reports whether p is one of the defined policies
func (p NullPolicy) IsValid() bool {
	switch p {
	case ZeroFill, AbsentIfAnyNull, AbsentIfAllNull:
		return true
	default:
		return false
	}
}

// Accessor extracts an optional amount from a record
type Accessor[T any] func(T) decimal.NullDecimal

// SumOf folds the accessor values of records under policy.
// Empty records, or a nil accessor, sum to zero under every policy.
// Panics with ErrUnknownNullPolicy if policy is not one of the defined policies.
func SumOf[T any](records []T, get Accessor[T], policy NullPolicy) decimal.NullDecimal {
	if !policy.IsValid() {
		panic(ErrUnknownNullPolicy)
	}
	if len(records) == 0 || get == nil {
		return Of(decimal.Zero)
	}
	values := collect(records, get)

	switch policy {
	case ZeroFill:
		return Of(Sum(values...))
	case AbsentIfAnyNull:
		return SumNullable(values...)
	case AbsentIfAllNull:
		return SumNullableIfAllNull(values...)
	default:
		panic(ErrUnknownNullPolicy)
	}
}

// AverageOf divides the zero-filling sum by the number of present values.
// With no present value the divisor is zero and the result is Absent.
func AverageOf[T any](records []T, get Accessor[T]) decimal.NullDecimal {
	sum := SumOf(records, get, ZeroFill)
	count := CountOf(records, get)
	return DivideNullable(sum, OfInt(int64(count)))
}

// CountOf returns how many records carry a present value
func CountOf[T any](records []T, get Accessor[T]) int {
	if get == nil {
		return 0
	}
	n := 0
	for _, r := range records {
		if get(r).Valid {
			n++
		}
	}
	return n
}

// MinOf returns the smallest accessor value, absent counting as zero.
// Empty records, or a nil accessor, yield zero.
func MinOf[T any](records []T, get Accessor[T]) decimal.Decimal {
	if len(records) == 0 || get == nil {
		return decimal.Zero
	}
	return Min(collect(records, get)...)
}

// MaxOf returns the largest accessor value, absent counting as zero.
// Empty records, or a nil accessor, yield zero.
func MaxOf[T any](records []T, get Accessor[T]) decimal.Decimal {
	if len(records) == 0 || get == nil {
		return decimal.Zero
	}
	return Max(collect(records, get)...)
}

func collect[T any](records []T, get Accessor[T]) []decimal.NullDecimal {
	values := make([]decimal.NullDecimal, len(records))
	for i, r := range records {
		values[i] = get(r)
	}
	return values
}
