package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
	"github.com/Debraj8301/smart-wallet/renderer"
)

type dashboardCmd struct {
	month string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display profile, budgets and spending in one view" }
func (*dashboardCmd) Usage() string {
	return `wallet dashboard [-m <YYYY-MM>]

  Fetches the profile, the categories and the spending statistics
  concurrently and displays them as a single report.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to report on (YYYY-MM), all time by default")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var (
		profile    *api.Profile
		categories []api.Category
		report     *api.StatsReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = a.client.Profile(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = a.client.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		report, err = a.client.Stats(gctx, c.month)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not build dashboard: %v\n", err)
		return subcommands.ExitFailure
	}

	var sb strings.Builder
	sb.WriteString(profileMarkdown(profile, a.cfg.UI.Currency))

	budgeted := 0.0
	for _, cat := range categories {
		budgeted += cat.MaxBudget
	}
	fmt.Fprintf(&sb, "\n%d categories, %s budgeted per month.\n\n",
		len(categories), smartwallet.FormatAmount(budgeted, a.cfg.UI.Currency))

	sb.WriteString(renderer.StatsMarkdown(report, c.month, a.cfg.UI.Currency))

	a.printMarkdown(sb.String())
	return subcommands.ExitSuccess
}
