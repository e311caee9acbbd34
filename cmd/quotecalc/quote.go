package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prevt/costing-backend/internal/calc"
)

func newPriceCmd(opts *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "price QUOTE",
		Short: "Price the cost lines of a quote",
		Long:  "Price the cost lines of a quote given by ID or number. With --save the totals are written back to the snapshot.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.withQuotes(ctx); err != nil {
				return err
			}
			id, err := a.resolveQuote(ctx, args[0])
			if err != nil {
				return err
			}

			p, err := a.pricing.PriceQuote(ctx, id)
			if err != nil {
				return err
			}

			display := a.policy.DisplayScale()
			internal := a.policy.MarkupScale()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-16s %12s %10s %12s\n", "CATEGORY", "COST", "MARKUP %", "PRICE")
			for _, l := range p.Lines {
				fmt.Fprintf(out, "%-16s %12s %10s %12s\n",
					l.Category,
					formatAmount(l.Cost, display),
					formatAmount(l.MarkupPercent, internal),
					formatAmount(l.Price, display),
				)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-12s %s\n", "total cost", formatAmount(p.TotalCost, display))
			fmt.Fprintf(out, "%-12s %s\n", "total price", formatAmount(p.TotalPrice, display))
			fmt.Fprintf(out, "%-12s %s\n", "profit", p.Profit.StringFixed(display))
			fmt.Fprintf(out, "%-12s %s\n", "markup %", formatAmount(p.Markup, internal))
			fmt.Fprintf(out, "%-12s %s\n", "margin %", formatAmount(p.Margin, internal))

			if !save {
				return nil
			}

			if _, err := a.pricing.ApplyTotals(ctx, id); err != nil {
				return err
			}
			if err := a.repo.DumpFile(ctx, a.quotesPath); err != nil {
				return err
			}
			a.log.Info("quote totals saved", zap.String("quote_id", id.String()), zap.String("path", a.quotesPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the totals on the quote and rewrite the snapshot")
	return cmd
}

func newFinancingCmd(opts *rootOptions) *cobra.Command {
	var rate string

	cmd := &cobra.Command{
		Use:   "financing --rate PERCENT QUOTE FROM TO",
		Short: "Interest on a quote's price over a period",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			r, err := parseAmount("rate", rate)
			if err != nil {
				return err
			}
			from, to, err := parseDates(args[1], args[2])
			if err != nil {
				return err
			}

			if err := a.withQuotes(ctx); err != nil {
				return err
			}
			id, err := a.resolveQuote(ctx, args[0])
			if err != nil {
				return err
			}

			f, err := a.pricing.FinancingCharge(ctx, id, r, from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %s .. %s\n", "period", f.Range.From.Format(dateLayout), f.Range.To.Format(dateLayout))
			fmt.Fprintf(out, "%-12s %d\n", "days", f.Days)
			fmt.Fprintf(out, "%-12s %d\n", "year length", f.YearLength)
			fmt.Fprintf(out, "%-12s %s\n", "fraction", a.policy.Rate(calc.Of(f.Fraction)).String())
			fmt.Fprintf(out, "%-12s %s\n", "charge", f.Charge.StringFixed(a.policy.DisplayScale()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rate, "rate", "r", "", "Yearly rate in percent")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
