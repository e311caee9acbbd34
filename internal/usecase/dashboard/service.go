package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/domain"
)

// latestQuotes is the number of quotes listed in the summary
const latestQuotes = 5

// StatusValue is the value of the priced quotes in one status
type StatusValue struct {
	Status domain.QuoteStatus
	Count  int
	Value  decimal.Decimal
}

// Summary represents the calculated dashboard figures
type Summary struct {
	QuoteCount      int
	InProgressCount int
	PricedCount     int
	TotalValue      decimal.Decimal
	AverageValue    decimal.NullDecimal // NULL when no quote is priced
	MinValue        decimal.Decimal
	MaxValue        decimal.Decimal
	ValueByStatus   []StatusValue
	Latest          []*domain.Quote
}

// PeriodComparison compares the quoted value of two periods
type PeriodComparison struct {
	Previous decimal.NullDecimal
	Current  decimal.NullDecimal
	Change   decimal.NullDecimal // Percentage change, NULL when not applicable
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	QuoteRepo domain.QuoteRepository
	Policy    calc.Policy
	Logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService instance
// A nil logger disables logging
func NewDashboardService(quoteRepo domain.QuoteRepository, policy calc.Policy, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		QuoteRepo: quoteRepo,
		Policy:    policy,
		Logger:    logger,
	}
}

// Summary calculates the dashboard figures over all quotes
// Logic:
//   - TotalValue: sum of quote totals, unpriced quotes count as zero
//   - AverageValue / MinValue / MaxValue: over priced quotes only
//   - ValueByStatus: priced quotes grouped by status, sorted by status
//   - Latest: the most recently created quotes
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	quotes, err := s.QuoteRepo.List(ctx, domain.QuoteFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	priced := make([]*domain.Quote, 0, len(quotes))
	inProgress := 0
	for _, q := range quotes {
		if q.Status == domain.QuoteStatusInProgress {
			inProgress++
		}
		if q.Total.Valid {
			priced = append(priced, q)
		}
	}

	summary := &Summary{
		QuoteCount:      len(quotes),
		InProgressCount: inProgress,
		PricedCount:     calc.CountOf(quotes, domain.QuoteTotal),
		TotalValue:      s.Policy.Display(calc.SumOf(quotes, domain.QuoteTotal, calc.ZeroFill)),
		AverageValue:    s.roundDisplay(calc.AverageOf(quotes, domain.QuoteTotal)),
		MinValue:        s.Policy.Display(calc.Of(calc.MinOf(priced, domain.QuoteTotal))),
		MaxValue:        s.Policy.Display(calc.Of(calc.MaxOf(priced, domain.QuoteTotal))),
		ValueByStatus:   s.valueByStatus(priced),
		Latest:          latest(quotes, latestQuotes),
	}

	s.Logger.Debug("dashboard summary calculated",
		zap.Int("quotes", summary.QuoteCount),
		zap.Int("priced", summary.PricedCount),
		zap.String("total_value", summary.TotalValue.String()),
	)

	return summary, nil
}

// ComparePeriods compares the value of the quotes created in two periods
// Both periods include their first and last day
// Logic: Change = (current - previous) / previous * 100
func (s *DashboardService) ComparePeriods(ctx context.Context, previous, current calc.DateRange) (*PeriodComparison, error) {
	prevValue, err := s.periodValue(ctx, previous)
	if err != nil {
		return nil, err
	}

	currValue, err := s.periodValue(ctx, current)
	if err != nil {
		return nil, err
	}

	change := calc.PercentageChange(prevValue, currValue)
	if change.Valid {
		change = calc.Of(s.Policy.Internal(change))
	}

	return &PeriodComparison{
		Previous: prevValue,
		Current:  currValue,
		Change:   change,
	}, nil
}

// periodValue sums the totals of the quotes created in period, NULL if none is priced
func (s *DashboardService) periodValue(ctx context.Context, period calc.DateRange) (decimal.NullDecimal, error) {
	bounds := period.Ordered()
	filter := domain.QuoteFilter{
		CreatedFrom: bounds.From,
		CreatedTo:   bounds.To.AddDate(0, 0, 1),
	}

	quotes, err := s.QuoteRepo.List(ctx, filter)
	if err != nil {
		return calc.Absent, fmt.Errorf("failed to list quotes for period: %w", err)
	}

	return s.roundDisplay(calc.SumOf(quotes, domain.QuoteTotal, calc.AbsentIfAllNull)), nil
}

func (s *DashboardService) valueByStatus(priced []*domain.Quote) []StatusValue {
	groups := make(map[domain.QuoteStatus][]*domain.Quote)
	for _, q := range priced {
		groups[q.Status] = append(groups[q.Status], q)
	}

	values := make([]StatusValue, 0, len(groups))
	for status, quotes := range groups {
		values = append(values, StatusValue{
			Status: status,
			Count:  len(quotes),
			Value:  s.Policy.Display(calc.SumOf(quotes, domain.QuoteTotal, calc.ZeroFill)),
		})
	}

	slices.SortFunc(values, func(a, b StatusValue) int {
		return strings.Compare(string(a.Status), string(b.Status))
	})
	return values
}

func (s *DashboardService) roundDisplay(a decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid {
		return calc.Absent
	}
	return calc.Of(s.Policy.Display(a))
}

// latest returns up to n quotes, newest first
func latest(quotes []*domain.Quote, n int) []*domain.Quote {
	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b *domain.Quote) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
