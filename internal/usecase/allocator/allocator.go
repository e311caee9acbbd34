package allocator

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/domain"
)

// Installment is the share of a quote total due under one payment term
type Installment struct {
	Label   string
	Amount  decimal.Decimal
	Share   decimal.Decimal // Percentage of the total, internal scale
	DueDate time.Time       // Zero when no acceptance date is known
}

// CalculateSchedule splits a quote total across the terms of a payment plan
// Returns the installments in priority order
// Logic:
//  1. Sort terms by Priority (Lower = First)
//  2. Deduct FIXED amounts first
//  3. Calculate PERCENT amounts based on the *Remainder* (Total - Fixed), rounded at the display scale
//     and capped at the amount not yet allocated
//  4. Assign the final leftover amount to the REMAINDER term
//
// Safety: Ensures the installments add up to the total exactly (no cent lost to rounding)
func CalculateSchedule(total decimal.Decimal, plan domain.PaymentPlan, policy calc.Policy, acceptedOn time.Time) ([]Installment, error) {
	if !total.IsPositive() {
		return nil, errors.New("total amount must be positive")
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	// Copy the terms to avoid mutating the plan
	terms := make([]domain.PaymentTerm, len(plan.Terms))
	copy(terms, plan.Terms)

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Priority < terms[j].Priority
	})

	amounts := make([]decimal.Decimal, len(terms))
	remaining := total

	// Step 1: Deduct FIXED amounts first
	for i, term := range terms {
		if term.Type == domain.PaymentTermTypeFixed {
			if term.Value.GreaterThan(remaining) {
				return nil, fmt.Errorf("FIXED term %q exceeds remaining balance", term.Label)
			}
			amounts[i] = term.Value
			remaining = remaining.Sub(term.Value)
		}
	}

	// Step 2: Calculate PERCENT amounts based on the Remainder
	// A rounded-up amount is capped at what is still unallocated
	unallocated := remaining
	for i, term := range terms {
		if term.Type == domain.PaymentTermTypePercent {
			share := calc.Multiply(calc.Of(remaining), calc.Of(calc.ToFraction(calc.Of(term.Value))))
			amounts[i] = decimal.Min(policy.Display(calc.Of(share)), unallocated)
			unallocated = unallocated.Sub(amounts[i])
		}
	}

	// Step 3: Assign the final leftover amount to the REMAINDER term
	// Validate guarantees exactly one REMAINDER term
	allocated := decimal.Zero
	remainderIdx := 0
	for i, term := range terms {
		if term.Type == domain.PaymentTermTypeRemainder {
			remainderIdx = i
			continue
		}
		allocated = allocated.Add(amounts[i])
	}
	amounts[remainderIdx] = total.Sub(allocated)

	// Safety check: Ensure the installments add up to the total exactly
	if !decimal.Sum(decimal.Zero, amounts...).Equal(total) {
		return nil, errors.New("installments do not add up to the total amount")
	}

	installments := make([]Installment, len(terms))
	for i, term := range terms {
		installments[i] = Installment{
			Label:  term.Label,
			Amount: amounts[i],
			Share:  policy.Internal(calc.PercentageOf(calc.Of(amounts[i]), calc.Of(total))),
		}
		if !acceptedOn.IsZero() {
			installments[i].DueDate = acceptedOn.AddDate(0, 0, term.DueDays)
		}
	}

	return installments, nil
}
