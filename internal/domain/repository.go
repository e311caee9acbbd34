package domain

import (
	"context"

	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote persistence operations
type QuoteRepository interface {
	// GetByID retrieves a quote by its ID
	// Returns ErrQuoteNotFound if no quote has that ID
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)

	// List retrieves the quotes matching filter
	// A zero filter returns all quotes
	List(ctx context.Context, filter QuoteFilter) ([]*Quote, error)

	// Save creates or replaces a quote
	Save(ctx context.Context, quote *Quote) error
}
