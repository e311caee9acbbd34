package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prevt/costing-backend/internal/calc"
)

func newDayCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daycount FROM TO",
		Short: "Day count and year fraction between two dates",
		Example: `  quotecalc daycount 2024-01-01 2024-07-01
  quotecalc daycount 2024-07-01 2024-01-01   # reversed, negative fraction`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			from, to, err := parseDates(args[0], args[1])
			if err != nil {
				return err
			}

			r := calc.NewDateRange(from, to)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %d\n", "days", r.Days())
			fmt.Fprintf(out, "%-12s %d\n", "year length", r.YearLength())
			fmt.Fprintf(out, "%-12s %s\n", "fraction", r.Fraction().String())
			return nil
		},
	}
}

func newAccrualCmd(opts *rootOptions) *cobra.Command {
	var rate, amount string

	cmd := &cobra.Command{
		Use:   "accrual --rate PERCENT FROM TO",
		Short: "Accrue a yearly rate over a period",
		Example: `  quotecalc accrual --rate 5 2024-01-01 2024-12-31
  quotecalc accrual --rate 5 --amount 12000 2024-01-01 2024-04-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			from, to, err := parseDates(args[0], args[1])
			if err != nil {
				return err
			}
			r, err := parseAmount("rate", rate)
			if err != nil {
				return err
			}
			base, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}

			period := calc.NewDateRange(from, to)
			accrual := period.Accrual(r)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %d\n", "days", period.Days())
			fmt.Fprintf(out, "%-12s %d\n", "year length", period.YearLength())
			fmt.Fprintf(out, "%-12s %s\n", "accrual", a.policy.Rate(calc.Of(accrual)).String())
			if base.Valid {
				charge := a.policy.Display(calc.Of(calc.Multiply(base, calc.Of(accrual))))
				fmt.Fprintf(out, "%-12s %s\n", "interest", charge.StringFixed(a.policy.DisplayScale()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rate, "rate", "r", "", "Yearly rate in percent")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount the rate applies to")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
