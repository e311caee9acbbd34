package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/prevt/costing-backend/internal/domain"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var terms []string
	var accepted string

	cmd := &cobra.Command{
		Use:   "schedule QUOTE --term LABEL=VALUE[@DAYS] ...",
		Short: "Split a quote's price into payment installments",
		Long: `Split a quote's price into payment installments, in the order the terms are given.
VALUE is a fixed amount (500), a percentage of what is left after fixed terms (30%),
or "rest" for the single term that takes the remainder. @DAYS sets the due date
relative to --accepted.`,
		Example: `  quotecalc schedule Q-2024-002 --term deposit=30% --term balance=rest@30 --accepted 2024-03-01`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			plan, err := parsePlan(terms)
			if err != nil {
				return err
			}
			var acceptedOn time.Time
			if accepted != "" {
				if acceptedOn, err = parseDate(accepted); err != nil {
					return err
				}
			}

			if err := a.withQuotes(ctx); err != nil {
				return err
			}
			id, err := a.resolveQuote(ctx, args[0])
			if err != nil {
				return err
			}

			installments, err := a.pricing.PaymentSchedule(ctx, id, plan, acceptedOn)
			if err != nil {
				return err
			}

			scale := a.policy.DisplayScale()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %12s %10s  %s\n", "TERM", "AMOUNT", "SHARE %", "DUE")
			for _, in := range installments {
				due := "-"
				if !in.DueDate.IsZero() {
					due = in.DueDate.Format(dateLayout)
				}
				fmt.Fprintf(out, "%-16s %12s %10s  %s\n", in.Label, in.Amount.StringFixed(scale), in.Share.StringFixed(a.policy.MarkupScale()), due)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&terms, "term", "t", nil, "Payment term LABEL=VALUE[@DAYS], repeatable")
	cmd.Flags().StringVar(&accepted, "accepted", "", "Acceptance date the due dates count from (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

// parsePlan builds a payment plan from LABEL=VALUE[@DAYS] terms, prioritized in the given order
func parsePlan(terms []string) (domain.PaymentPlan, error) {
	plan := domain.PaymentPlan{Terms: make([]domain.PaymentTerm, 0, len(terms))}

	for i, raw := range terms {
		label, value, ok := strings.Cut(raw, "=")
		if !ok || label == "" {
			return domain.PaymentPlan{}, fmt.Errorf("invalid term %q, expected LABEL=VALUE[@DAYS]", raw)
		}

		term := domain.PaymentTerm{Label: label, Priority: i + 1}

		if v, days, found := strings.Cut(value, "@"); found {
			n, err := strconv.Atoi(days)
			if err != nil {
				return domain.PaymentPlan{}, fmt.Errorf("invalid due days in term %q", raw)
			}
			term.DueDays = n
			value = v
		}

		switch {
		case strings.EqualFold(value, "rest"):
			term.Type = domain.PaymentTermTypeRemainder
		case strings.HasSuffix(value, "%"):
			d, err := decimal.NewFromString(strings.TrimSuffix(value, "%"))
			if err != nil {
				return domain.PaymentPlan{}, fmt.Errorf("invalid percentage in term %q", raw)
			}
			term.Type = domain.PaymentTermTypePercent
			term.Value = d
		default:
			d, err := decimal.NewFromString(value)
			if err != nil {
				return domain.PaymentPlan{}, fmt.Errorf("invalid amount in term %q", raw)
			}
			term.Type = domain.PaymentTermTypeFixed
			term.Value = d
		}

		plan.Terms = append(plan.Terms, term)
	}

	return plan, nil
}
