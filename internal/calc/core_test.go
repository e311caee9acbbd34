package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func assertPresent(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	if assert.True(t, got.Valid, "want %s, got absent", want) {
		assertDecimal(t, want, got.Decimal)
	}
}

func TestNullToZero(t *testing.T) {
	assertDecimal(t, "0", NullToZero(Absent))
	assertDecimal(t, "5", NullToZero(OfInt(5)))
	assertDecimal(t, "-1.25", NullToZero(MustParse("-1.25")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNullOrZero(Absent))
	assert.True(t, IsNullOrZero(MustParse("0.000")))
	assert.False(t, IsNullOrZero(OfInt(1)))

	assert.False(t, IsStrictlyPositive(Absent))
	assert.False(t, IsStrictlyPositive(OfInt(0)))
	assert.True(t, IsStrictlyPositive(MustParse("0.01")))

	assert.False(t, IsNegative(Absent))
	assert.False(t, IsNegative(OfInt(0)))
	assert.True(t, IsNegative(MustParse("-0.01")))
}

func TestMultiply(t *testing.T) {
	assertDecimal(t, "12.5", Multiply(MustParse("2.5"), OfInt(5)))
	assertDecimal(t, "0", Multiply(Absent, OfInt(5)))
	assertDecimal(t, "0", Multiply(OfInt(5), Absent))
	assertDecimal(t, "0", Multiply(Absent, Absent))
}

func TestDivide(t *testing.T) {
	tests := []struct {
		name     string
		dividend decimal.NullDecimal
		divisor  decimal.NullDecimal
		want     string
	}{
		{"exact", OfInt(10), OfInt(4), "2.5"},
		{"rounded at division scale", OfInt(1), OfInt(3), "0.3333333333333333333"},
		{"half up at the last digit", OfInt(2), OfInt(3), "0.6666666666666666667"},
		{"negative rounds away from zero", OfInt(-2), OfInt(3), "-0.6666666666666666667"},
		{"zero divisor", OfInt(10), OfInt(0), "0"},
		{"absent divisor", OfInt(10), Absent, "0"},
		{"absent dividend", Absent, OfInt(10), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, Divide(tt.dividend, tt.divisor))
		})
	}
}

func TestDivide_KeepsDivisionScale(t *testing.T) {
	got := Divide(OfInt(100), OfInt(3))
	assert.Equal(t, int32(-DivisionScale), got.Exponent())
	assert.Equal(t, "33.3333333333333333333", got.String())
}

func TestDivideNullable(t *testing.T) {
	assertPresent(t, "2.5", DivideNullable(OfInt(10), OfInt(4)))
	assert.False(t, DivideNullable(OfInt(10), OfInt(0)).Valid)
	assert.False(t, DivideNullable(OfInt(10), Absent).Valid)
	assert.False(t, DivideNullable(Absent, OfInt(10)).Valid)
}

func TestDivideScale(t *testing.T) {
	assertDecimal(t, "0.67", DivideScale(OfInt(2), OfInt(3), 2))
	assertDecimal(t, "1", DivideScale(OfInt(5), OfInt(10), 0))
	assertDecimal(t, "0", DivideScale(OfInt(5), OfInt(0), 2))
	assertPresent(t, "0.333", DivideNullableScale(OfInt(1), OfInt(3), 3))

	assert.PanicsWithValue(t, ErrInvalidScale, func() {
		DivideScale(OfInt(1), OfInt(3), -1)
	})
}

func TestDivideVariantsDiffer(t *testing.T) {
	zero := OfInt(0)
	for _, a := range []decimal.NullDecimal{OfInt(7), MustParse("-3.2"), Absent} {
		assertDecimal(t, "0", Divide(a, zero))
		assert.False(t, DivideNullable(a, zero).Valid)
	}
}

func TestNegate(t *testing.T) {
	assertDecimal(t, "0", Negate(Absent))
	assertDecimal(t, "-4.5", Negate(MustParse("4.5")))
	assertDecimal(t, "4.5", Negate(MustParse("-4.5")))
}

func TestSumVariants(t *testing.T) {
	tests := []struct {
		name      string
		values    []decimal.NullDecimal
		sum       string
		nullable  string // "" means absent
		ifAllNull string // "" means absent
	}{
		{"empty", nil, "0", "0", ""},
		{"all present", []decimal.NullDecimal{OfInt(1), MustParse("2.5")}, "3.5", "3.5", "3.5"},
		{"one absent", []decimal.NullDecimal{OfInt(5), Absent}, "5", "", "5"},
		{"all absent", []decimal.NullDecimal{Absent, Absent}, "0", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.sum, Sum(tt.values...))

			if tt.nullable == "" {
				assert.False(t, SumNullable(tt.values...).Valid)
			} else {
				assertPresent(t, tt.nullable, SumNullable(tt.values...))
			}

			if tt.ifAllNull == "" {
				assert.False(t, SumNullableIfAllNull(tt.values...).Valid)
			} else {
				assertPresent(t, tt.ifAllNull, SumNullableIfAllNull(tt.values...))
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	assertDecimal(t, "5", Subtract(OfInt(10), OfInt(3), OfInt(2)))
	assertDecimal(t, "7", Subtract(OfInt(10), Absent, OfInt(3)))
	assertDecimal(t, "-3", Subtract(Absent, OfInt(3)))
	assertDecimal(t, "10", Subtract(OfInt(10)))
	assertDecimal(t, "0", Subtract())
}

func TestSubtractNullable(t *testing.T) {
	assertPresent(t, "5", SubtractNullable(OfInt(10), OfInt(3), OfInt(2)))
	assert.False(t, SubtractNullable(OfInt(10), Absent).Valid)
	assert.False(t, SubtractNullable(Absent, OfInt(10)).Valid)
}

func TestMinMax(t *testing.T) {
	values := []decimal.NullDecimal{OfInt(3), MustParse("-1.5"), Absent, OfInt(8)}
	assertDecimal(t, "-1.5", Min(values...))
	assertDecimal(t, "8", Max(values...))

	// absent competes as zero
	assertDecimal(t, "0", Min(OfInt(2), Absent))
	assertDecimal(t, "0", Max(OfInt(-2), Absent))

	assertDecimal(t, "4", Min(OfInt(4)))
	assertDecimal(t, "4", Max(OfInt(4)))
}

func TestMinMax_PanicWithoutValues(t *testing.T) {
	assert.PanicsWithValue(t, ErrNoValues, func() { Min() })
	assert.PanicsWithValue(t, ErrNoValues, func() { Max() })
}
