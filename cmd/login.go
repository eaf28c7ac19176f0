package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in and store the session token" }
func (*loginCmd) Usage() string {
	return `wallet login -email <email> [-password <password>]

  Authenticates against the backend and stores the access token for every
  subsequent command. The password is read from stdin when not given on
  the command line.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "password", "", "Password (prompted when omitted)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required.")
		return subcommands.ExitUsageError
	}
	if c.password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not read password: %v\n", err)
			return subcommands.ExitFailure
		}
		c.password = strings.TrimRight(line, "\r\n")
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.client.Login(ctx, c.email, c.password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: login failed: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Logged in as %s.\n", c.email)
	return subcommands.ExitSuccess
}
