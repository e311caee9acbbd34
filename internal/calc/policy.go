package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scales shared by every operator in the package. All rounding is HALF_UP.
const (
	DisplayScale  int32 = 2  // currency amounts shown to users
	MarkupScale   int32 = 4  // internal amounts, markups and margins
	RateScale     int32 = 12 // exchange rates
	DivisionScale int32 = 19 // working scale of every division
)

var (
	// ErrInvalidScale is the panic value for a negative rounding scale.
	ErrInvalidScale = errors.New("calc: scale must not be negative")

	// ErrNoValues is the panic value for an extremum over an empty argument list.
	ErrNoValues = errors.New("calc: at least one value is required")

	// ErrUnknownNullPolicy is the panic value for an aggregation with an undefined NullPolicy.
	ErrUnknownNullPolicy = errors.New("calc: unknown null policy")
)

// Policy is an immutable set of rounding scales.
// It is passed by value. The zero Policy rounds everything to integers,
// use DefaultPolicy for the standard scales.
type Policy struct {
	displayScale  int32
	markupScale   int32
	rateScale     int32
	divisionScale int32
}

// DefaultPolicy returns the policy built from the package constants
func DefaultPolicy() Policy {
	return Policy{
		displayScale:  DisplayScale,
		markupScale:   MarkupScale,
		rateScale:     RateScale,
		divisionScale: DivisionScale,
	}
}

// NewPolicy creates a policy with explicit scales
// Returns an error if the scales are inconsistent
func NewPolicy(display, markup, rate, division int32) (Policy, error) {
	p := Policy{
		displayScale:  display,
		markupScale:   markup,
		rateScale:     rate,
		divisionScale: division,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate ensures no scale is negative and that divisions keep at least display precision
func (p Policy) Validate() error {
	scales := []struct {
		name  string
		scale int32
	}{
		{"display", p.displayScale},
		{"markup", p.markupScale},
		{"rate", p.rateScale},
		{"division", p.divisionScale},
	}
	for _, s := range scales {
		if s.scale < 0 {
			return fmt.Errorf("%w: %s scale is %d", ErrInvalidScale, s.name, s.scale)
		}
	}
	if p.divisionScale < p.displayScale {
		return fmt.Errorf("division scale %d is below display scale %d", p.divisionScale, p.displayScale)
	}
	return nil
}

func (p Policy) DisplayScale() int32  { return p.displayScale }
func (p Policy) MarkupScale() int32   { return p.markupScale }
func (p Policy) RateScale() int32     { return p.rateScale }
func (p Policy) DivisionScale() int32 { return p.divisionScale }

// Display rounds a to the display scale, absent becomes zero
func (p Policy) Display(a decimal.NullDecimal) decimal.Decimal {
	return RoundToScale(a, p.displayScale)
}

// Internal rounds a to the markup scale, absent becomes zero
func (p Policy) Internal(a decimal.NullDecimal) decimal.Decimal {
	return RoundToScale(a, p.markupScale)
}

// Rate rounds a to the exchange rate scale, absent becomes zero
func (p Policy) Rate(a decimal.NullDecimal) decimal.Decimal {
	return RoundToScale(a, p.rateScale)
}

// RoundToScale rounds HALF_UP at scale. Absent rounds to zero.
// Panics with ErrInvalidScale if scale is negative.
func RoundToScale(a decimal.NullDecimal, scale int32) decimal.Decimal {
	mustScale(scale)
	return NullToZero(a).Round(scale)
}

// Round2 rounds to two decimal places
func Round2(a decimal.NullDecimal) decimal.Decimal {
	return RoundToScale(a, DisplayScale)
}

// Round0 rounds to a whole number
func Round0(a decimal.NullDecimal) decimal.Decimal {
	return RoundToScale(a, 0)
}

func mustScale(scale int32) {
	if scale < 0 {
		panic(ErrInvalidScale)
	}
}
