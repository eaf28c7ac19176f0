package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/Debraj8301/smart-wallet/renderer"
)

type statsCmd struct {
	month string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display a spending statistics report" }
func (*statsCmd) Usage() string {
	return `wallet stats [-m <YYYY-MM>]

  Displays the spending report: overview counts, spending by category,
  behavioral-tag spending bars and payment-method distribution. Without
  -m the report covers all transactions.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to report on (YYYY-MM), all time by default")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := a.client.Stats(ctx, c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch statistics: %v\n", err)
		return subcommands.ExitFailure
	}

	a.printMarkdown(renderer.StatsMarkdown(report, c.month, a.cfg.UI.Currency))
	return subcommands.ExitSuccess
}
