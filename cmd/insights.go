package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/insights"
)

type insightsCmd struct {
	generate bool
	outline  bool
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "display or regenerate the AI spending insights" }
func (*insightsCmd) Usage() string {
	return `wallet insights [-generate] [-outline]

  Displays the latest AI-generated insights report. With -generate, asks
  the backend for a fresh report first and waits for the job to finish.
  With -outline, only the report's section headings are printed.
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.generate, "generate", false, "Generate a fresh report before displaying it")
	f.BoolVar(&c.outline, "outline", false, "Only print the report's section headings")
}

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.generate {
		handle, err := a.newTracker().Submit(ctx, smartwallet.InsightGeneration, a.client.GenerateInsights, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not start generation: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Generating insights (job %s)...\n", handle.Job().ID)
		if err := handle.Wait(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: generation failed: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	insight, err := a.client.LatestInsights(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch insights: %v\n", err)
		return subcommands.ExitFailure
	}
	if insight == nil {
		fmt.Println("No insights yet. Run 'wallet insights -generate' to create a report.")
		return subcommands.ExitSuccess
	}

	if c.outline {
		headings, err := insights.Outline(insight.Content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, h := range headings {
			for i := 1; i < h.Level; i++ {
				fmt.Print("  ")
			}
			fmt.Println(h.Title)
		}
		return subcommands.ExitSuccess
	}

	a.printMarkdown(insight.Content)
	return subcommands.ExitSuccess
}
