package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/domain"
)

// MockQuoteRepository is a mock implementation of QuoteRepository for testing
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(domain.QuoteFilter) []*domain.Quote); ok {
		return fn(filter), args.Error(1)
	}
	return args.Get(0).([]*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newQuote(number string, status domain.QuoteStatus, total string, created time.Time) *domain.Quote {
	q := &domain.Quote{
		ID:        uuid.New(),
		Number:    number,
		Status:    status,
		CreatedAt: created,
	}
	if total != "" {
		q.Total = decimal.NewNullDecimal(decimal.RequireFromString(total))
	}
	return q
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

// fixture: six quotes over the first quarter of 2024, one of them not priced yet
func fixture() []*domain.Quote {
	return []*domain.Quote{
		newQuote("Q-1", domain.QuoteStatusDraft, "1000.00", day(2024, 1, 5)),
		newQuote("Q-2", domain.QuoteStatusInProgress, "2500.50", day(2024, 2, 10)),
		newQuote("Q-3", domain.QuoteStatusInProgress, "", day(2024, 2, 20)),
		newQuote("Q-4", domain.QuoteStatusAccepted, "499.99", day(2024, 3, 1)),
		newQuote("Q-5", domain.QuoteStatusAccepted, "1200", day(2024, 3, 3)),
		newQuote("Q-6", domain.QuoteStatusRejected, "300", day(2024, 3, 15)),
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := NewDashboardService(mockRepo, calc.DefaultPolicy(), nil)

	quotes := fixture()
	mockRepo.On("List", ctx, domain.QuoteFilter{}).Return(quotes, nil)

	summary, err := service.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 6, summary.QuoteCount)
	assert.Equal(t, 2, summary.InProgressCount)
	assert.Equal(t, 5, summary.PricedCount)
	assertDecimal(t, "5500.49", summary.TotalValue)

	// 5500.49 / 5 = 1100.098
	require.True(t, summary.AverageValue.Valid)
	assertDecimal(t, "1100.10", summary.AverageValue.Decimal)

	// The unpriced quote does not drag the minimum to zero
	assertDecimal(t, "300", summary.MinValue)
	assertDecimal(t, "2500.50", summary.MaxValue)

	require.Len(t, summary.ValueByStatus, 4)
	wantStatuses := []domain.QuoteStatus{
		domain.QuoteStatusAccepted,
		domain.QuoteStatusDraft,
		domain.QuoteStatusInProgress,
		domain.QuoteStatusRejected,
	}
	for i, sv := range summary.ValueByStatus {
		assert.Equal(t, wantStatuses[i], sv.Status)
	}
	assert.Equal(t, 2, summary.ValueByStatus[0].Count)
	assertDecimal(t, "1699.99", summary.ValueByStatus[0].Value)
	assert.Equal(t, 1, summary.ValueByStatus[2].Count)

	require.Len(t, summary.Latest, 5)
	assert.Equal(t, "Q-6", summary.Latest[0].Number)
	assert.Equal(t, "Q-2", summary.Latest[4].Number)

	mockRepo.AssertExpectations(t)
}

func TestSummary_NoQuotes(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := NewDashboardService(mockRepo, calc.DefaultPolicy(), nil)

	mockRepo.On("List", ctx, domain.QuoteFilter{}).Return([]*domain.Quote{}, nil)

	summary, err := service.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.QuoteCount)
	assert.True(t, summary.TotalValue.IsZero())
	assert.False(t, summary.AverageValue.Valid)
	assert.True(t, summary.MinValue.IsZero())
	assert.True(t, summary.MaxValue.IsZero())
	assert.Empty(t, summary.ValueByStatus)
	assert.Empty(t, summary.Latest)
}

func TestSummary_ListFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := NewDashboardService(mockRepo, calc.DefaultPolicy(), nil)

	listErr := errors.New("connection refused")
	mockRepo.On("List", ctx, domain.QuoteFilter{}).Return(nil, listErr)

	summary, err := service.Summary(ctx)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, listErr)
}

// inPeriod returns the fixture quotes the repository would return for filter
func inPeriod(quotes []*domain.Quote, filter domain.QuoteFilter) []*domain.Quote {
	var out []*domain.Quote
	for _, q := range quotes {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	return out
}

func TestComparePeriods(t *testing.T) {
	ctx := context.Background()
	quotes := fixture()

	january := calc.NewDateRange(day(2024, 1, 1), day(2024, 1, 31))
	february := calc.NewDateRange(day(2024, 2, 1), day(2024, 2, 29))
	march := calc.NewDateRange(day(2024, 3, 1), day(2024, 3, 31))
	lateFebruary := calc.NewDateRange(day(2024, 2, 15), day(2024, 2, 29))
	december := calc.NewDateRange(day(2023, 12, 1), day(2023, 12, 31))

	tests := []struct {
		name         string
		previous     calc.DateRange
		current      calc.DateRange
		wantPrevious string
		wantCurrent  string
		wantChange   string
	}{
		{
			name:         "growth",
			previous:     january,
			current:      february,
			wantPrevious: "1000",
			wantCurrent:  "2500.50",
			wantChange:   "150.05",
		},
		{
			name:         "decline",
			previous:     february,
			current:      march,
			wantPrevious: "2500.50",
			wantCurrent:  "1999.99",
			wantChange:   "-20.0164",
		},
		{
			name:         "reversed range is ordered",
			previous:     january.Reversed(),
			current:      february,
			wantPrevious: "1000",
			wantCurrent:  "2500.50",
			wantChange:   "150.05",
		},
		{
			name:         "only unpriced quotes in current period",
			previous:     january,
			current:      lateFebruary,
			wantPrevious: "1000",
		},
		{
			name:        "no quotes in previous period",
			previous:    december,
			current:     january,
			wantCurrent: "1000",
			// Empty period sums to zero and the zero-filling divide yields zero
			wantPrevious: "0",
			wantChange:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockQuoteRepository)
			service := NewDashboardService(mockRepo, calc.DefaultPolicy(), nil)

			mockRepo.On("List", ctx, mock.Anything).
				Return(func(filter domain.QuoteFilter) []*domain.Quote {
					return inPeriod(quotes, filter)
				}, nil)

			cmp, err := service.ComparePeriods(ctx, tt.previous, tt.current)

			require.NoError(t, err)
			assertOptional(t, tt.wantPrevious, cmp.Previous)
			assertOptional(t, tt.wantCurrent, cmp.Current)
			assertOptional(t, tt.wantChange, cmp.Change)
		})
	}
}

func TestComparePeriods_ListFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := NewDashboardService(mockRepo, calc.DefaultPolicy(), nil)

	listErr := errors.New("timeout")
	mockRepo.On("List", ctx, mock.Anything).Return(nil, listErr)

	cmp, err := service.ComparePeriods(ctx,
		calc.NewDateRange(day(2024, 1, 1), day(2024, 1, 31)),
		calc.NewDateRange(day(2024, 2, 1), day(2024, 2, 29)),
	)

	assert.Nil(t, cmp)
	assert.ErrorIs(t, err, listErr)
	assert.Contains(t, err.Error(), "failed to list quotes for period")
}

// assertOptional checks a NULL-able amount, an empty want meaning NULL
func assertOptional(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	if want == "" {
		assert.False(t, got.Valid, "want NULL, got %s", got.Decimal)
		return
	}
	if assert.True(t, got.Valid, "want %s, got NULL", want) {
		assertDecimal(t, want, got.Decimal)
	}
}
