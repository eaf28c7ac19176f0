package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/Debraj8301/smart-wallet/api"
)

type signupCmd struct {
	name       string
	email      string
	password   string
	age        int
	occupation string
	income     float64
	country    string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create a new Smart Wallet account" }
func (*signupCmd) Usage() string {
	return `wallet signup -name <name> -email <email> -password <password> [-age n] [-occupation s] [-income n] [-country s]

  Creates an account on the backend. Profile details are optional and can
  be filled in later with 'wallet profile -complete'.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Full name")
	f.StringVar(&c.email, "email", "", "Email address, used to log in")
	f.StringVar(&c.password, "password", "", "Password (8 characters minimum)")
	f.IntVar(&c.age, "age", 0, "Age")
	f.StringVar(&c.occupation, "occupation", "", "Occupation")
	f.Float64Var(&c.income, "income", 0, "Yearly income")
	f.StringVar(&c.country, "country", "", "Country of residence")
}

func (c *signupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.email == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, -email and -password are required.")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	req := api.SignupRequest{
		Name:         c.name,
		Email:        c.email,
		Password:     c.password,
		Age:          c.age,
		Occupation:   c.occupation,
		YearlyIncome: c.income,
		Country:      c.country,
	}
	if err := a.client.Signup(ctx, req); err != nil {
		fmt.Fprintf(os.Stderr, "Error: signup failed: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Account created for %s. Log in with 'wallet login'.\n", c.email)
	return subcommands.ExitSuccess
}
