package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/domain"
	"github.com/prevt/costing-backend/internal/usecase/allocator"
)

// ErrQuoteNotPriced is returned when a quote has no costed line to schedule payments for
var ErrQuoteNotPriced = errors.New("quote has no price")

// LinePricing is the priced view of a single cost line
type LinePricing struct {
	Category      string
	Description   string
	Cost          decimal.NullDecimal
	MarkupPercent decimal.NullDecimal
	Price         decimal.NullDecimal // NULL when the line has no cost
}

// QuotePricing represents the calculated prices of a quote
type QuotePricing struct {
	QuoteID    uuid.UUID
	Lines      []LinePricing
	TotalCost  decimal.NullDecimal // NULL when no line is costed
	TotalPrice decimal.NullDecimal // NULL when no line is costed
	Profit     decimal.Decimal
	Markup     decimal.NullDecimal // Profit as a percentage of cost
	Margin     decimal.NullDecimal // Profit as a percentage of price
}

// FinancingResult represents the interest accrued on a quote's price over a period
type FinancingResult struct {
	Range      calc.DateRange
	Days       int
	YearLength int
	Fraction   decimal.Decimal
	Charge     decimal.Decimal
}

// PricingService handles quote costing operations
type PricingService struct {
	QuoteRepo domain.QuoteRepository
	Policy    calc.Policy
	Logger    *zap.Logger
}

// NewPricingService creates a new PricingService instance
// A nil logger disables logging
func NewPricingService(quoteRepo domain.QuoteRepository, policy calc.Policy, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{
		QuoteRepo: quoteRepo,
		Policy:    policy,
		Logger:    logger,
	}
}

// PriceQuote calculates the prices of a quote
// Logic:
//   - Line price = cost * (1 + markup/100), rounded at the internal scale; NULL if the line has no cost
//   - TotalCost / TotalPrice = sum of the costed lines, NULL if no line is costed, rounded at the display scale
//   - Profit = TotalPrice - TotalCost
//   - Markup / Margin = profit as a percentage of cost / price, rounded at the internal scale
func (s *PricingService) PriceQuote(ctx context.Context, quoteID uuid.UUID) (*QuotePricing, error) {
	quote, err := s.QuoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s: %w", quoteID, err)
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	return s.price(quote), nil
}

// ApplyTotals prices a quote and stores its totals on the quote
// Returns the updated quote
func (s *PricingService) ApplyTotals(ctx context.Context, quoteID uuid.UUID) (*domain.Quote, error) {
	quote, err := s.QuoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s: %w", quoteID, err)
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	pricing := s.price(quote)
	quote.Total = pricing.TotalPrice
	quote.TotalCost = pricing.TotalCost

	if err := s.QuoteRepo.Save(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote %s: %w", quoteID, err)
	}

	s.Logger.Debug("quote totals applied",
		zap.String("quote_id", quoteID.String()),
		zap.String("total", pricing.TotalPrice.Decimal.String()),
		zap.Bool("total_valid", pricing.TotalPrice.Valid),
	)

	return quote, nil
}

// FinancingCharge calculates the interest on the quote's price at annualRate percent from from to to
// Logic: Charge = TotalPrice * Fraction * annualRate / 100, rounded at the display scale
// A reversed period gives a negative charge; an unpriced quote gives zero
func (s *PricingService) FinancingCharge(ctx context.Context, quoteID uuid.UUID, annualRate decimal.NullDecimal, from, to time.Time) (*FinancingResult, error) {
	pricing, err := s.PriceQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	period := calc.NewDateRange(from, to)
	accrual := period.Accrual(annualRate)
	charge := s.Policy.Display(calc.Of(calc.Multiply(pricing.TotalPrice, calc.Of(accrual))))

	s.Logger.Debug("financing charge calculated",
		zap.String("quote_id", quoteID.String()),
		zap.Int("days", period.Days()),
		zap.Int("year_length", period.YearLength()),
		zap.String("charge", charge.String()),
	)

	return &FinancingResult{
		Range:      period,
		Days:       period.Days(),
		YearLength: period.YearLength(),
		Fraction:   period.Fraction(),
		Charge:     charge,
	}, nil
}

// PaymentSchedule splits the quote's price into the installments of plan
// Due dates count from acceptedOn, a zero acceptedOn leaves them unset
func (s *PricingService) PaymentSchedule(ctx context.Context, quoteID uuid.UUID, plan domain.PaymentPlan, acceptedOn time.Time) ([]allocator.Installment, error) {
	pricing, err := s.PriceQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if !calc.IsStrictlyPositive(pricing.TotalPrice) {
		return nil, fmt.Errorf("quote %s: %w", quoteID, ErrQuoteNotPriced)
	}

	installments, err := allocator.CalculateSchedule(pricing.TotalPrice.Decimal, plan, s.Policy, acceptedOn)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule payments for quote %s: %w", quoteID, err)
	}

	s.Logger.Debug("payment schedule calculated",
		zap.String("quote_id", quoteID.String()),
		zap.Int("installments", len(installments)),
	)

	return installments, nil
}

func (s *PricingService) price(quote *domain.Quote) *QuotePricing {
	lines := make([]LinePricing, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lp := LinePricing{
			Category:      l.Category,
			Description:   l.Description,
			Cost:          l.Cost,
			MarkupPercent: l.MarkupPercent,
			Price:         calc.Absent,
		}
		if l.Cost.Valid {
			lp.Price = calc.Of(s.Policy.Internal(calc.Of(calc.PriceWithMarkup(l.Cost, l.MarkupPercent))))
		}
		lines = append(lines, lp)
	}

	totalCost := s.roundDisplay(calc.SumOf(lines, lineCost, calc.AbsentIfAllNull))
	totalPrice := s.roundDisplay(calc.SumOf(lines, linePrice, calc.AbsentIfAllNull))

	return &QuotePricing{
		QuoteID:    quote.ID,
		Lines:      lines,
		TotalCost:  totalCost,
		TotalPrice: totalPrice,
		Profit:     s.Policy.Display(calc.Of(calc.Subtract(totalPrice, totalCost))),
		Markup:     s.roundInternal(calc.Markup(totalCost, totalPrice)),
		Margin:     s.roundInternal(calc.Margin(totalCost, totalPrice)),
	}
}

// roundDisplay keeps absent values absent
func (s *PricingService) roundDisplay(a decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid {
		return calc.Absent
	}
	return calc.Of(s.Policy.Display(a))
}

func (s *PricingService) roundInternal(a decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid {
		return calc.Absent
	}
	return calc.Of(s.Policy.Internal(a))
}

func lineCost(l LinePricing) decimal.NullDecimal  { return l.Cost }
func linePrice(l LinePricing) decimal.NullDecimal { return l.Price }
