package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrQuoteNotFound is returned by repositories when no quote has the requested ID
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidQuote wraps every quote validation failure
	ErrInvalidQuote = errors.New("invalid quote")
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft      QuoteStatus = "draft"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusAccepted   QuoteStatus = "accepted"
	QuoteStatusRejected   QuoteStatus = "rejected"
	QuoteStatusExpired    QuoteStatus = "expired"
)

// IsValid returns true if the status is one of the known states
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusInProgress, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// CostLine is a single costed item of a quote (structure, graphics, lighting, ...)
type CostLine struct {
	Category      string
	Description   string
	Cost          decimal.NullDecimal // NULL when the item has not been costed yet
	MarkupPercent decimal.NullDecimal // NULL means no markup
}

// Validate ensures the cost line adheres to domain rules
func (l *CostLine) Validate() error {
	if l.Category == "" {
		return errors.New("cost line category cannot be empty")
	}

	// Markup is a surcharge on cost, a negative one would sell below cost
	if l.MarkupPercent.Valid && l.MarkupPercent.Decimal.IsNegative() {
		return fmt.Errorf("cost line %q markup cannot be negative", l.Category)
	}

	return nil
}

// Quote represents a customer quote in the domain layer
// Total and TotalCost are NULL until the quote has been priced
type Quote struct {
	ID         uuid.UUID
	Number     string
	Title      string
	ProspectID uuid.UUID
	Status     QuoteStatus
	Lines      []CostLine
	Total      decimal.NullDecimal // Selling price (costs + markups), display scale
	TotalCost  decimal.NullDecimal // Sum of line costs, display scale
	CreatedAt  time.Time
	ExpiresAt  time.Time // Zero when the quote has no expiry
}

// Validate ensures the quote adheres to domain rules
// Returns an error wrapping ErrInvalidQuote if validation fails
func (q *Quote) Validate() error {
	if q.Number == "" {
		return fmt.Errorf("%w: quote number cannot be empty", ErrInvalidQuote)
	}

	if !q.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidQuote, q.Status)
	}

	if !q.ExpiresAt.IsZero() && q.ExpiresAt.Before(q.CreatedAt) {
		return fmt.Errorf("%w: quote expires before it was created", ErrInvalidQuote)
	}

	for i := range q.Lines {
		if err := q.Lines[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuote, err)
		}
	}

	return nil
}

// QuoteTotal returns the quote's selling price, used as an aggregation accessor
func QuoteTotal(q *Quote) decimal.NullDecimal {
	return q.Total
}

// QuoteFilter narrows a quote listing
// Empty fields do not filter
type QuoteFilter struct {
	Statuses    []QuoteStatus
	CreatedFrom time.Time // inclusive
	CreatedTo   time.Time // exclusive
}

// Matches reports whether q passes the filter
func (f QuoteFilter) Matches(q *Quote) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if q.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !f.CreatedFrom.IsZero() && q.CreatedAt.Before(f.CreatedFrom) {
		return false
	}

	if !f.CreatedTo.IsZero() && !q.CreatedAt.Before(f.CreatedTo) {
		return false
	}

	return true
}
