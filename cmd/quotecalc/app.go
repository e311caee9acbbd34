package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prevt/costing-backend/internal/adapter/repository/memory"
	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/config"
	"github.com/prevt/costing-backend/internal/domain"
	"github.com/prevt/costing-backend/internal/logger"
	"github.com/prevt/costing-backend/internal/usecase/dashboard"
	"github.com/prevt/costing-backend/internal/usecase/pricing"
)

const dateLayout = "2006-01-02"

// app is the wired set of components a command runs against
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	policy     calc.Policy
	quotesPath string
	repo       *memory.QuoteRepository
	pricing    *pricing.PricingService
	dashboard  *dashboard.DashboardService
}

// newApp loads the configuration and builds the logger and rounding policy
func newApp(opts *rootOptions) (*app, error) {
	// 1. Configuration
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	// 2. Logger
	logCfg := cfg.Logger()
	if opts.verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	quotesPath := cfg.Data.QuotesFile
	if opts.quotesPath != "" {
		quotesPath = opts.quotesPath
	}

	return &app{
		cfg:        cfg,
		log:        log.Named(cfg.App.Name),
		policy:     policy,
		quotesPath: quotesPath,
	}, nil
}

// withQuotes loads the quote snapshot and initializes the services
func (a *app) withQuotes(ctx context.Context) error {
	// 3. Repository
	a.repo = memory.NewQuoteRepository()
	n, err := a.repo.LoadFile(ctx, a.quotesPath)
	if err != nil {
		return err
	}
	a.log.Debug("quotes loaded", zap.String("path", a.quotesPath), zap.Int("count", n))

	// 4. Services
	a.pricing = pricing.NewPricingService(a.repo, a.policy, a.log.Named("pricing"))
	a.dashboard = dashboard.NewDashboardService(a.repo, a.policy, a.log.Named("dashboard"))
	return nil
}

// resolveQuote accepts a quote ID or a quote number
func (a *app) resolveQuote(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	quotes, err := a.repo.List(ctx, domain.QuoteFilter{})
	if err != nil {
		return uuid.Nil, err
	}
	for _, q := range quotes {
		if strings.EqualFold(q.Number, ref) {
			return q.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("quote %q: %w", ref, domain.ErrQuoteNotFound)
}

func (a *app) close() {
	_ = a.log.Sync()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func parseDates(from, to string) (time.Time, time.Time, error) {
	f, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return f, t, nil
}

// parseAmount parses an optional amount, the empty string being NULL
func parseAmount(name, s string) (decimal.NullDecimal, error) {
	if s == "" {
		return calc.Absent, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return calc.Absent, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return calc.Of(d), nil
}

// formatAmount prints a NULL amount as "-"
func formatAmount(a decimal.NullDecimal, scale int32) string {
	if !a.Valid {
		return "-"
	}
	return a.Decimal.StringFixed(scale)
}
