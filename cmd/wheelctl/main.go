package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"wheeltradr/internal/logger"
)

var Version = "dev"

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	a := cli.NewApp()
	a.Name = "wheelctl"
	a.Usage = "operate a wheeltradr journal from the command line"
	a.Version = Version
	a.Commands = []cli.Command{
		exportCMD,
		importCMD,
		summaryCMD,
		cyclesCMD,
		refreshCMD,
		activityCMD,
		hashPassphraseCMD,
	}
	return a
}

var (
	exportCMD = cli.Command{
		Name:   "export",
		Usage:  "write the journal as a backup document",
		Action: withJournal(exportAction),
		Flags: []cli.Flag{
			cli.StringFlag{Name: "out, o", Usage: "output file (default stdout)"},
		},
	}
	importCMD = cli.Command{
		Name:        "import",
		Usage:       "replace the journal with a backup document",
		Action:      withJournal(importAction),
		Description: "Accepts an exported document or a bare array of trades. An invalid document changes nothing.",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "in, i", Usage: "backup file to import"},
		},
	}
	summaryCMD = cli.Command{
		Name:   "summary",
		Usage:  "print realized gains and losses over a date range",
		Action: withJournal(summaryAction),
		Flags: []cli.Flag{
			cli.StringFlag{Name: "range, r", Value: "current_month", Usage: "today, current_month, last_3_months, last_6_months, prev_year, custom, trailing_months"},
			cli.IntFlag{Name: "months, m", Usage: "months for trailing_months"},
			cli.StringFlag{Name: "start", Usage: "custom range start (YYYY-MM-DD)"},
			cli.StringFlag{Name: "end", Usage: "custom range end (YYYY-MM-DD)"},
			cli.StringFlag{Name: "ticker, t", Usage: "ticker substring"},
		},
	}
	cyclesCMD = cli.Command{
		Name:   "cycles",
		Usage:  "list wheel cycles",
		Action: withJournal(cyclesAction),
	}
	refreshCMD = cli.Command{
		Name:   "refresh",
		Usage:  "fetch quotes for open tickers and the VIX",
		Action: withJournal(refreshAction),
	}
	activityCMD = cli.Command{
		Name:   "activity",
		Usage:  "show the most recent journal changes",
		Action: withJournal(activityAction),
		Flags: []cli.Flag{
			cli.IntFlag{Name: "limit, n", Value: 20},
		},
	}
	hashPassphraseCMD = cli.Command{
		Name:        "hash-passphrase",
		Usage:       "print a bcrypt hash for JOURNAL_PASSPHRASE_HASH",
		ArgsUsage:   "<passphrase>",
		Action:      hashPassphraseAction,
		Description: "Setting JOURNAL_PASSPHRASE_HASH turns on bearer token auth for the API.",
	}
)
