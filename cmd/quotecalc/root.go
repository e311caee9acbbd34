package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	configPath string
	quotesPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "quotecalc",
		Short:         "Quote costing calculator",
		Long:          "Price quotes, accrue financing charges and summarize quote values with exact decimal arithmetic.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./quotecalc.toml if present)")
	cmd.PersistentFlags().StringVarP(&opts.quotesPath, "quotes", "q", "", "Quote snapshot JSON file (overrides data.quotes_file)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newDayCountCmd(opts),
		newAccrualCmd(opts),
		newPriceCmd(opts),
		newFinancingCmd(opts),
		newScheduleCmd(opts),
		newDashboardCmd(opts),
	)

	return cmd
}
