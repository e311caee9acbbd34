package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/usecase/dashboard"
)

type dashboardOptions struct {
	from     string
	to       string
	prevFrom string
	prevTo   string
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	dopts := &dashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summary of quote values",
		Long: `Summary of quote values. With --from and --to the value of that period is
compared with the previous one, by default the period of the same length just before it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.withQuotes(ctx); err != nil {
				return err
			}

			summary, err := a.dashboard.Summary(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, summary, a.policy.DisplayScale())

			if dopts.from == "" && dopts.to == "" {
				return nil
			}

			previous, current, err := dopts.periods()
			if err != nil {
				return err
			}
			cmp, err := a.dashboard.ComparePeriods(ctx, previous, current)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-12s %s .. %s  %s\n", "previous",
				previous.From.Format(dateLayout), previous.To.Format(dateLayout),
				formatAmount(cmp.Previous, a.policy.DisplayScale()))
			fmt.Fprintf(out, "%-12s %s .. %s  %s\n", "current",
				current.From.Format(dateLayout), current.To.Format(dateLayout),
				formatAmount(cmp.Current, a.policy.DisplayScale()))
			fmt.Fprintf(out, "%-12s %s\n", "change %", formatAmount(cmp.Change, a.policy.MarkupScale()))
			return nil
		},
	}

	cmd.Flags().StringVar(&dopts.from, "from", "", "First day of the compared period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dopts.to, "to", "", "Last day of the compared period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dopts.prevFrom, "prev-from", "", "First day of the previous period")
	cmd.Flags().StringVar(&dopts.prevTo, "prev-to", "", "Last day of the previous period")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsRequiredTogether("prev-from", "prev-to")

	return cmd
}

// periods returns the previous and current periods, both inclusive of their last day
func (o *dashboardOptions) periods() (calc.DateRange, calc.DateRange, error) {
	from, to, err := parseDates(o.from, o.to)
	if err != nil {
		return calc.DateRange{}, calc.DateRange{}, err
	}
	current := calc.NewDateRange(from, to).Ordered()

	if o.prevFrom != "" {
		pf, pt, err := parseDates(o.prevFrom, o.prevTo)
		if err != nil {
			return calc.DateRange{}, calc.DateRange{}, err
		}
		return calc.NewDateRange(pf, pt).Ordered(), current, nil
	}

	// Same number of days, ending the day before the current period
	prevTo := current.From.AddDate(0, 0, -1)
	prevFrom := prevTo.AddDate(0, 0, -current.Days())
	return calc.NewDateRange(prevFrom, prevTo), current, nil
}

func printSummary(out io.Writer, s *dashboard.Summary, scale int32) {
	fmt.Fprintf(out, "%-12s %d (%d in progress, %d priced)\n", "quotes", s.QuoteCount, s.InProgressCount, s.PricedCount)
	fmt.Fprintf(out, "%-12s %s\n", "total", s.TotalValue.StringFixed(scale))
	fmt.Fprintf(out, "%-12s %s\n", "average", formatAmount(s.AverageValue, scale))
	fmt.Fprintf(out, "%-12s %s\n", "min", s.MinValue.StringFixed(scale))
	fmt.Fprintf(out, "%-12s %s\n", "max", s.MaxValue.StringFixed(scale))

	if len(s.ValueByStatus) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-12s %6s %14s\n", "STATUS", "COUNT", "VALUE")
		for _, sv := range s.ValueByStatus {
			fmt.Fprintf(out, "%-12s %6d %14s\n", sv.Status, sv.Count, sv.Value.StringFixed(scale))
		}
	}

	if len(s.Latest) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "LATEST")
		for _, q := range s.Latest {
			fmt.Fprintf(out, "%-12s %s  %-12s %s\n", q.Number, q.CreatedAt.Format(dateLayout), q.Status, formatAmount(q.Total, scale))
		}
	}
}
