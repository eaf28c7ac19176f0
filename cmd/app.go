// Package cmd implements the CLI application to operate a Smart Wallet
// account: authentication, statement uploads, spending reports, and the
// asynchronous AI analysis jobs.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/Debraj8301/smart-wallet/api"
	"github.com/Debraj8301/smart-wallet/config"
	"github.com/Debraj8301/smart-wallet/insights"
	"github.com/Debraj8301/smart-wallet/session"
	"github.com/Debraj8301/smart-wallet/tracker"
)

// Commands lists every subcommand of the wallet binary. A main package
// registers them all on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&signupCmd{},
	&loginCmd{},
	&logoutCmd{},
	&profileCmd{},
	&uploadCmd{},
	&transactionsCmd{},
	&statsCmd{},
	&insightsCmd{},
	&agentCmd{},
	&budgetCmd{},
	&dashboardCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var verbose = flag.Bool("v", false, "enable debug logging")
var baseURL = flag.String("base-url", "", "Backend base URL (overrides configuration)")

// newLogger builds the application logger. Debug lines only show up
// with -v, everything goes to stderr so report output stays clean.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// app bundles everything a subcommand needs to talk to the backend.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	client  *api.Client
	session *session.Session
}

// newApp loads configuration, restores the stored session and builds the
// API client. The expiry hook warns the user once when the backend
// rejects the stored token.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLogger()

	store, err := session.NewFileStore(cfg.API.TokenFile)
	if err != nil {
		return nil, err
	}
	sess := session.New(store, log)
	sess.OnExpired = func() {
		fmt.Fprintln(os.Stderr, "Session expired, please log in again with 'wallet login'.")
	}
	sess.Load()

	url := cfg.API.BaseURL
	if *baseURL != "" {
		url = *baseURL
	}
	client := api.New(url, sess, log)
	client.SetTimeout(cfg.API.Timeout)

	return &app{cfg: cfg, log: log, client: client, session: sess}, nil
}

// newTracker builds a job tracker polling through the app's client.
func (a *app) newTracker() *tracker.Tracker {
	return tracker.New(a.client.JobStatus, tracker.Config{
		AgentInitialDelay:   a.cfg.Poll.AgentDelay,
		InsightInitialDelay: a.cfg.Poll.InsightDelay,
		Interval:            a.cfg.Poll.Interval,
		MaxWait:             a.cfg.Poll.MaxWait,
	}, a.log)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer fails.
func (a *app) printMarkdown(md string) {
	out, err := insights.Render(md, a.cfg.UI.Width)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
