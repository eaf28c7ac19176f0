package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
	"github.com/Debraj8301/smart-wallet/tracker"
)

type agentCmd struct {
	batchSize int
	threshold float64
	detach    bool
	jobID     string
}

func (*agentCmd) Name() string     { return "agent" }
func (*agentCmd) Synopsis() string { return "run the transaction analysis agent" }
func (*agentCmd) Usage() string {
	return `wallet agent [-batch n] [-threshold t] [-detach] [-job <id>]

  Starts the backend analysis agent over the uploaded transactions and
  waits for it to finish. With -detach the job id is printed immediately
  instead; resume waiting later with -job.
`
}

func (c *agentCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.batchSize, "batch", api.DefaultAgentBatchSize, "Transactions per analysis batch")
	f.Float64Var(&c.threshold, "threshold", api.DefaultAgentThreshold, "Categorization confidence threshold")
	f.BoolVar(&c.detach, "detach", false, "Print the job id and exit without waiting")
	f.StringVar(&c.jobID, "job", "", "Wait on an already-running job instead of starting one")
}

func (c *agentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.detach {
		jobID, err := a.client.RunAgentAsync(ctx, c.batchSize, c.threshold)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not start agent: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(jobID)
		return subcommands.ExitSuccess
	}

	tr := a.newTracker()
	var handle *tracker.Handle
	if c.jobID != "" {
		handle = tr.Start(ctx, smartwallet.AgentRun, c.jobID, nil)
	} else {
		handle, err = tr.Submit(ctx, smartwallet.AgentRun, func(ctx context.Context) (string, error) {
			return a.client.RunAgentAsync(ctx, c.batchSize, c.threshold)
		}, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not start agent: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Fprintf(os.Stderr, "Analyzing transactions (job %s)...\n", handle.Job().ID)
	if err := handle.Wait(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
		return subcommands.ExitFailure
	}

	printAgentResult(handle.Result())
	return subcommands.ExitSuccess
}

// printAgentResult summarizes the loosely-typed job result. The result
// shape belongs to the backend, so only the common counters are picked
// out and everything else is dumped as JSON under -v.
func printAgentResult(result any) {
	fmt.Println("✅ Analysis complete.")
	if result == nil {
		return
	}
	for _, field := range []struct{ path, label string }{
		{"$.processed", "transactions processed"},
		{"$.categorized", "transactions categorized"},
		{"$.flagged", "transactions flagged"},
	} {
		jval, err := jsonpath.Get(field.path, result)
		if err != nil {
			continue
		}
		// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if n, ok := jval.(float64); ok {
			fmt.Printf("  %d %s\n", int(n), field.label)
		}
	}
	if *verbose {
		if raw, err := json.MarshalIndent(result, "", "  "); err == nil {
			fmt.Println(string(raw))
		}
	}
}
