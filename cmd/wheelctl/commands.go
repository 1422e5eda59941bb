package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli"

	"wheeltradr/internal/app"
	"wheeltradr/internal/config"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"
	"wheeltradr/internal/services"
)

// journalAction is a command body that runs against an opened journal.
type journalAction func(c *cli.Context, journal *app.App, out io.Writer) error

// openJournal is replaced in tests.
var openJournal = func() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.Open(cfg)
}

func withJournal(action journalAction) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()
		return action(c, journal, c.App.Writer)
	}
}

func exportAction(c *cli.Context, journal *app.App, out io.Writer) error {
	doc, err := journal.Backup.Export()
	if err != nil {
		return err
	}

	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeAndClose(f, doc); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, err = fmt.Fprintf(out, "exported %d trades to %s\n", len(doc.Trades), path)
		return err
	}
	return writeJSON(out, doc)
}

func importAction(c *cli.Context, journal *app.App, out io.Writer) error {
	path := c.String("in")
	if path == "" {
		return errors.New("--in is required")
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := journal.Backup.Import(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d trades (settings applied: %v, legacy lots migrated: %d)\n",
		result.Trades, result.SettingsApplied, result.LegacyMigrated)
	return err
}

func summaryAction(c *cli.Context, journal *app.App, out io.Writer) error {
	start, err := models.ParseDate(c.String("start"))
	if err != nil {
		return err
	}
	end, err := models.ParseDate(c.String("end"))
	if err != nil {
		return err
	}

	summary, err := journal.Analytics.Summary(services.SummaryRequest{
		Range:  metrics.Range(c.String("range")),
		Params: metrics.RangeParams{Months: c.Int("months"), Start: start, End: end},
		Ticker: c.String("ticker"),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Window\t%s .. %s\n", summary.Window.Start, summary.Window.End)
	fmt.Fprintf(w, "Trades\t%d\n", summary.TradeCount)
	fmt.Fprintf(w, "Short-term gains\t%.2f\n", summary.ShortTermGains)
	fmt.Fprintf(w, "Short-term losses\t%.2f\n", summary.ShortTermLosses)
	fmt.Fprintf(w, "Long-term gains\t%.2f\n", summary.LongTermGains)
	fmt.Fprintf(w, "Long-term losses\t%.2f\n", summary.LongTermLosses)
	fmt.Fprintf(w, "Net\t%.2f\n", summary.Net)
	fmt.Fprintf(w, "Gain ratio\t%.2f%%\n", summary.GainRatio)
	return w.Flush()
}

func cyclesAction(_ *cli.Context, journal *app.App, out io.Writer) error {
	list, err := journal.Analytics.Cycles()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CYCLE\tTICKER\tSTATUS\tSTEPS\tSTART\tLAST\tP&L\tROI%")
	for _, cy := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%.2f\t%.2f\n",
			cy.ID, cy.Ticker, cy.Status, cy.Steps, cy.StartDate, cy.LastDate, cy.TotalPnL, cy.ROI)
	}
	return w.Flush()
}

func refreshAction(_ *cli.Context, journal *app.App, out io.Writer) error {
	timeout := journal.Config.MarketTimeout * 3
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := journal.Market.Refresh(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

func activityAction(c *cli.Context, journal *app.App, out io.Writer) error {
	entries, err := journal.Activity.Recent(c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tTRADE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.Format(time.RFC3339), e.Action, e.TradeID)
	}
	return w.Flush()
}

func hashPassphraseAction(c *cli.Context) error {
	passphrase := c.Args().First()
	if passphrase == "" {
		return errors.New("a passphrase argument is required")
	}
	hash, err := services.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, hash)
	return err
}

// writeAndClose encodes v to w and closes it. A failed close is reported, since
// the file may be incomplete.
func writeAndClose(w io.WriteCloser, v interface{}) error {
	if err := writeJSON(w, v); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
