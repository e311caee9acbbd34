package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prevt/costing-backend/internal/domain"
)

// snapshot is the JSON document holding a set of quotes
type snapshot struct {
	Quotes []quoteRecord `json:"quotes"`
}

type quoteRecord struct {
	ID         uuid.UUID           `json:"id"`
	Number     string              `json:"number"`
	Title      string              `json:"title,omitempty"`
	ProspectID uuid.UUID           `json:"prospect_id"`
	Status     string              `json:"status"`
	Lines      []costLineRecord    `json:"lines"`
	Total      decimal.NullDecimal `json:"total"`
	TotalCost  decimal.NullDecimal `json:"total_cost"`
	CreatedAt  time.Time           `json:"created_at"`
	ExpiresAt  *time.Time          `json:"expires_at,omitempty"`
}

type costLineRecord struct {
	Category      string              `json:"category"`
	Description   string              `json:"description,omitempty"`
	Cost          decimal.NullDecimal `json:"cost"`
	MarkupPercent decimal.NullDecimal `json:"markup_percent"`
}

// Load reads a JSON snapshot and saves every quote it holds
// Nothing is stored unless every quote in the snapshot is valid
// Returns the number of quotes loaded
func (r *QuoteRepository) Load(ctx context.Context, src io.Reader) (int, error) {
	var snap snapshot
	if err := json.NewDecoder(src).Decode(&snap); err != nil {
		return 0, fmt.Errorf("failed to decode quote snapshot: %w", err)
	}

	quotes := make([]*domain.Quote, 0, len(snap.Quotes))
	for _, rec := range snap.Quotes {
		quote := rec.toDomain()
		if err := quote.Validate(); err != nil {
			return 0, fmt.Errorf("failed to load quote %q: %w", rec.Number, err)
		}
		if quote.ID == uuid.Nil {
			quote.ID = uuid.New()
		}
		quotes = append(quotes, quote)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range quotes {
		r.quotes[q.ID] = q
	}
	return len(quotes), nil
}

// LoadFile loads the JSON snapshot stored at path
func (r *QuoteRepository) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open quote snapshot: %w", err)
	}
	defer f.Close()

	return r.Load(ctx, f)
}

// Dump writes every stored quote as a JSON snapshot
func (r *QuoteRepository) Dump(ctx context.Context, dst io.Writer) error {
	quotes, err := r.List(ctx, domain.QuoteFilter{})
	if err != nil {
		return err
	}

	snap := snapshot{Quotes: make([]quoteRecord, 0, len(quotes))}
	for _, q := range quotes {
		snap.Quotes = append(snap.Quotes, fromDomain(q))
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode quote snapshot: %w", err)
	}
	return nil
}

// DumpFile writes the JSON snapshot to path, replacing the file
func (r *QuoteRepository) DumpFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create quote snapshot: %w", err)
	}

	if err := r.Dump(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (rec quoteRecord) toDomain() *domain.Quote {
	quote := &domain.Quote{
		ID:         rec.ID,
		Number:     rec.Number,
		Title:      rec.Title,
		ProspectID: rec.ProspectID,
		Status:     domain.QuoteStatus(rec.Status),
		Lines:      make([]domain.CostLine, 0, len(rec.Lines)),
		Total:      rec.Total,
		TotalCost:  rec.TotalCost,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.ExpiresAt != nil {
		quote.ExpiresAt = *rec.ExpiresAt
	}
	for _, l := range rec.Lines {
		quote.Lines = append(quote.Lines, domain.CostLine{
			Category:      l.Category,
			Description:   l.Description,
			Cost:          l.Cost,
			MarkupPercent: l.MarkupPercent,
		})
	}
	return quote
}

func fromDomain(q *domain.Quote) quoteRecord {
	rec := quoteRecord{
		ID:         q.ID,
		Number:     q.Number,
		Title:      q.Title,
		ProspectID: q.ProspectID,
		Status:     string(q.Status),
		Lines:      make([]costLineRecord, 0, len(q.Lines)),
		Total:      q.Total,
		TotalCost:  q.TotalCost,
		CreatedAt:  q.CreatedAt,
	}
	if !q.ExpiresAt.IsZero() {
		expires := q.ExpiresAt
		rec.ExpiresAt = &expires
	}
	for _, l := range q.Lines {
		rec.Lines = append(rec.Lines, costLineRecord{
			Category:      l.Category,
			Description:   l.Description,
			Cost:          l.Cost,
			MarkupPercent: l.MarkupPercent,
		})
	}
	return rec
}
