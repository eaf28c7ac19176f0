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

type profileCmd struct {
	complete   bool
	name       string
	age        int
	occupation string
	income     float64
	country    string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "display or complete the user profile" }
func (*profileCmd) Usage() string {
	return `wallet profile [-complete -name <name> -age n -occupation s -income n -country s]

  Displays the authenticated user's profile, including the financial
  behavior scores once the analysis agent has computed them. With
  -complete, saves the given profile details instead.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.complete, "complete", false, "Save profile details instead of displaying them")
	f.StringVar(&c.name, "name", "", "Full name")
	f.IntVar(&c.age, "age", 0, "Age")
	f.StringVar(&c.occupation, "occupation", "", "Occupation")
	f.Float64Var(&c.income, "income", 0, "Yearly income")
	f.StringVar(&c.country, "country", "", "Country of residence")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.complete {
		update := api.ProfileUpdate{
			Name:         c.name,
			Age:          c.age,
			Occupation:   c.occupation,
			YearlyIncome: c.income,
			Country:      c.country,
		}
		if err := a.client.CompleteProfile(ctx, update); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not save profile: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("✅ Profile saved.")
		return subcommands.ExitSuccess
	}

	p, err := a.client.Profile(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch profile: %v\n", err)
		return subcommands.ExitFailure
	}
	a.printMarkdown(profileMarkdown(p, a.cfg.UI.Currency))
	return subcommands.ExitSuccess
}

// profileMarkdown renders the profile, with a scores section only when the
// backend has computed at least one score.
func profileMarkdown(p *api.Profile, currency string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	fmt.Fprintf(&sb, "- Email: %s\n", p.Email)
	if p.Age > 0 {
		fmt.Fprintf(&sb, "- Age: %d\n", p.Age)
	}
	if p.Occupation != "" {
		fmt.Fprintf(&sb, "- Occupation: %s\n", p.Occupation)
	}
	if p.YearlyIncome > 0 {
		fmt.Fprintf(&sb, "- Yearly income: %s\n", smartwallet.FormatAmount(p.YearlyIncome, currency))
	}
	if p.Country != "" {
		fmt.Fprintf(&sb, "- Country: %s\n", p.Country)
	}

	renderer.ConditionalBlock(&sb, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Financial scores\n\n")
		written := false
		if p.BudgetAdherenceScore != nil {
			fmt.Fprintf(w, "- Budget adherence: %s\n", *p.BudgetAdherenceScore)
			written = true
		}
		if p.ImpulseBuyScore != nil {
			fmt.Fprintf(w, "- Impulse buying: %s\n", *p.ImpulseBuyScore)
			written = true
		}
		return written
	})
	return sb.String()
}
