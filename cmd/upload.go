package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type uploadCmd struct {
	statementType string
}

func (*uploadCmd) Name() string     { return "upload" }
func (*uploadCmd) Synopsis() string { return "upload a PDF statement for extraction" }
func (*uploadCmd) Usage() string {
	return `wallet upload [-type <bank|credit-card|upi>] <file.pdf>

  Uploads a PDF statement. The backend extracts and categorizes its
  transactions. The statement type helps the extractor, common spellings
  like 'cc' or 'credit_card' are accepted.
`
}

func (c *uploadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statementType, "type", "", "Statement type: bank, credit-card or upi")
}

func (c *uploadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one statement file is required.")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	receipt, err := a.client.UploadStatement(ctx, f.Arg(0), c.statementType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: upload failed: %v\n", err)
		return subcommands.ExitFailure
	}

	if receipt.Message != "" {
		fmt.Println(receipt.Message)
	} else {
		fmt.Println("✅ Statement uploaded.")
	}
	return subcommands.ExitSuccess
}
