package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentTermType represents how a payment term takes its share of a quote total
type PaymentTermType string

const (
	PaymentTermTypeFixed     PaymentTermType = "FIXED"
	PaymentTermTypePercent   PaymentTermType = "PERCENT"
	PaymentTermTypeRemainder PaymentTermType = "REMAINDER"
)

// PaymentPlan splits a quote total into installments (deposit, progress payments, balance)
type PaymentPlan struct {
	Terms []PaymentTerm
}

// PaymentTerm is a single installment of a payment plan
type PaymentTerm struct {
	Label    string
	Type     PaymentTermType // 'FIXED', 'PERCENT' (of the total left after fixed terms), or 'REMAINDER'
	Value    decimal.Decimal // Amount for FIXED, percentage (above 0, at most 100) for PERCENT, ignored for REMAINDER
	Priority int             // Lower number = paid first
	DueDays  int             // Days after acceptance the installment is due
}

// Validate ensures the payment plan adheres to domain rules
// Exactly one term must be the REMAINDER, it absorbs rounding so the installments add up to the total
func (p *PaymentPlan) Validate() error {
	if len(p.Terms) == 0 {
		return errors.New("payment plan must have at least one term")
	}

	remainderCount := 0
	percentTotal := decimal.Zero
	for _, term := range p.Terms {
		if term.Label == "" {
			return errors.New("payment term label cannot be empty")
		}

		if term.DueDays < 0 {
			return fmt.Errorf("payment term %q cannot be due before acceptance", term.Label)
		}

		switch term.Type {
		case PaymentTermTypeRemainder:
			remainderCount++
		case PaymentTermTypeFixed:
			if !term.Value.IsPositive() {
				return errors.New("FIXED payment term value must be positive")
			}
		case PaymentTermTypePercent:
			if !term.Value.IsPositive() || term.Value.GreaterThan(decimal.NewFromInt(100)) {
				return errors.New("PERCENT payment term value must be above 0 and at most 100")
			}
			percentTotal = percentTotal.Add(term.Value)
		default:
			return errors.New("payment term type must be FIXED, PERCENT, or REMAINDER")
		}
	}

	if percentTotal.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("PERCENT payment terms cannot exceed 100 in total")
	}

	if remainderCount != 1 {
		return errors.New("payment plan must have exactly one REMAINDER term")
	}

	return nil
}
