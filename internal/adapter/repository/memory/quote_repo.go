package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/prevt/costing-backend/internal/domain"
)

// QuoteRepository implements domain.QuoteRepository in memory
// Stored quotes are copied on the way in and out, callers never share them
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[uuid.UUID]*domain.Quote
}

// NewQuoteRepository creates an empty quote repository
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[uuid.UUID]*domain.Quote)}
}

// GetByID retrieves a quote by its ID
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote %s: %w", id, domain.ErrQuoteNotFound)
	}
	return cloneQuote(quote), nil
}

// List retrieves the quotes matching filter ordered by creation date, then number
func (r *QuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := make([]*domain.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		if filter.Matches(q) {
			quotes = append(quotes, cloneQuote(q))
		}
	}

	slices.SortFunc(quotes, func(a, b *domain.Quote) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.Number < b.Number {
			return -1
		}
		if a.Number > b.Number {
			return 1
		}
		return 0
	})
	return quotes, nil
}

// Save creates or replaces a quote
// A quote without ID is given a new one
func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := quote.Validate(); err != nil {
		return err
	}

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.quotes[quote.ID] = cloneQuote(quote)
	return nil
}

// Len returns the number of stored quotes
func (r *QuoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}

func cloneQuote(q *domain.Quote) *domain.Quote {
	c := *q
	c.Lines = slices.Clone(q.Lines)
	return &c
}
