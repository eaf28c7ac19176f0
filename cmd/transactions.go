package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
	"github.com/Debraj8301/smart-wallet/renderer"
)

type tagFlags []string

func (t *tagFlags) String() string {
	return strings.Join(*t, ", ")
}

func (t *tagFlags) Set(value string) error {
	*t = append(*t, value)
	return nil
}

type transactionsCmd struct {
	from          string
	to            string
	minAmount     float64
	maxAmount     float64
	category      string
	txType        string
	statementType string
	status        string
	tags          tagFlags
	search        string
	limit         int
	offset        int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list extracted transactions" }
func (*transactionsCmd) Usage() string {
	return `wallet transactions [-from <YYYY-MM-DD>] [-to <YYYY-MM-DD>] [-category <name>] [-type Credit|Debit] [-tag <tag>]... [-search <text>] [-limit n] [-offset n]

  Lists the transactions extracted from uploaded statements, newest first.
  All filters combine; -tag can be given several times to require every
  tag. -min and -max bound the amount.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Only transactions on or after this date (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Only transactions on or before this date (YYYY-MM-DD)")
	f.Float64Var(&c.minAmount, "min", -1, "Minimum amount")
	f.Float64Var(&c.maxAmount, "max", -1, "Maximum amount")
	f.StringVar(&c.category, "category", "", "Filter by category")
	f.StringVar(&c.txType, "type", "", "Filter by transaction type (Credit or Debit)")
	f.StringVar(&c.statementType, "statement", "", "Filter by statement type (bank, credit-card, upi)")
	f.StringVar(&c.status, "status", "", "Filter by verification status")
	f.Var(&c.tags, "tag", "Require this tag (can be given several times)")
	f.StringVar(&c.search, "search", "", "Search in the transaction details")
	f.IntVar(&c.limit, "limit", 50, "Page size")
	f.IntVar(&c.offset, "offset", 0, "Page start")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	filter := api.TransactionFilter{
		StartDate:          c.from,
		EndDate:            c.to,
		Category:           c.category,
		Type:               c.txType,
		StatementType:      c.statementType,
		VerificationStatus: c.status,
		Tags:               c.tags,
		Search:             c.search,
		Limit:              c.limit,
		Offset:             c.offset,
	}
	if c.minAmount >= 0 {
		filter.MinAmount = &c.minAmount
	}
	if c.maxAmount >= 0 {
		filter.MaxAmount = &c.maxAmount
	}

	page, err := a.client.Transactions(ctx, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not list transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	a.printMarkdown(transactionsMarkdown(page, a.cfg.UI.Currency))
	return subcommands.ExitSuccess
}

// transactionsMarkdown renders one listing page as a table, with a count
// footer for pagination.
func transactionsMarkdown(page *api.TransactionPage, currency string) string {
	var sb strings.Builder
	sb.WriteString("# Transactions\n\n")

	renderer.ConditionalBlock(&sb, func(w io.Writer) bool {
		fmt.Fprintf(w, "| Date | Details | Category | Tags | Amount |\n")
		fmt.Fprintf(w, "|---|---|---|---|---:|\n")
		for _, tx := range page.Data {
			amount := smartwallet.FormatAmount(tx.Amount, currency)
			if tx.Type == "Debit" {
				amount = "-" + amount
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				tx.Date, tx.Details, tx.Category, strings.Join(tx.Tags, ", "), amount)
		}
		return len(page.Data) > 0
	})

	if len(page.Data) == 0 {
		sb.WriteString("No transactions match.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "\nShowing %d–%d of %d.\n",
		page.Offset+1, page.Offset+len(page.Data), page.Count)
	return sb.String()
}
