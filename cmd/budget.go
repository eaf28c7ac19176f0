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
	"github.com/Debraj8301/smart-wallet/renderer"
)

type budgetCmd struct {
	create string
	set    string
	amount string
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "list categories and manage their monthly budgets" }
func (*budgetCmd) Usage() string {
	return `wallet budget [-create <name> | -set <category-id>] [-amount <n>]

  Without flags, lists the spending categories and their budgets. With
  -create, adds a category; with -set, updates an existing category's
  monthly budget. Both take the budget from -amount.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.create, "create", "", "Create a category with this name")
	f.StringVar(&c.set, "set", "", "Update the budget of the category with this id")
	f.StringVar(&c.amount, "amount", "", "Monthly budget amount")
}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.create != "" || c.set != "" {
		budget, err := smartwallet.ParseBudget(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		switch {
		case c.create != "":
			cat, err := a.client.CreateCategory(ctx, c.create, budget)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not create category: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("✅ Created category %q (id %s).\n", cat.Name, cat.ID)
		case c.set != "":
			cat, err := a.client.SetCategoryBudget(ctx, c.set, budget)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not update budget: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("✅ Budget of %q set to %s.\n", cat.Name, smartwallet.FormatAmount(cat.MaxBudget, a.cfg.UI.Currency))
		}
		return subcommands.ExitSuccess
	}

	categories, err := a.client.Categories(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not list categories: %v\n", err)
		return subcommands.ExitFailure
	}

	var sb strings.Builder
	sb.WriteString("# Categories\n\n")
	renderer.ConditionalBlock(&sb, func(w io.Writer) bool {
		fmt.Fprintf(w, "| Id | Name | Monthly budget |\n")
		fmt.Fprintf(w, "|---|---|---:|\n")
		for _, cat := range categories {
			budget := "-"
			if cat.MaxBudget > 0 {
				budget = smartwallet.FormatAmount(cat.MaxBudget, a.cfg.UI.Currency)
			}
			fmt.Fprintf(w, "| %s | %s | %s |\n", cat.ID, cat.Name, budget)
		}
		return len(categories) > 0
	})
	if len(categories) == 0 {
		sb.WriteString("No categories yet.\n")
	}
	a.printMarkdown(sb.String())
	return subcommands.ExitSuccess
}
