package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"wheeltradr/internal/app"
	"wheeltradr/internal/config"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/models"
	"wheeltradr/internal/services"
)

func init() {
	logger.Init("test")
}

// useJournal points openJournal at a sqlite file under dir.
func useJournal(t *testing.T, dir string, seed bool) {
	t.Helper()
	cfg := &config.Config{
		DBDriver:       "sqlite",
		SQLitePath:     filepath.Join(dir, "journal.db"),
		MigrationsPath: "../../migrations",
		SeedDemoData:   seed,
	}
	prev := openJournal
	openJournal = func() (*app.App, error) { return app.Open(cfg) }
	t.Cleanup(func() { openJournal = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp()
	a.Writer = &out
	err := a.Run(append([]string{"wheelctl"}, args...))
	return out.String(), err
}

func TestExportImport(t *testing.T) {
	source := t.TempDir()
	backup := filepath.Join(source, "backup.json")

	t.Run("export_writes_a_backup_document", func(t *testing.T) {
		useJournal(t, source, true)
		out, err := run(t, "export", "--out", backup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "exported 4 trades") {
			t.Errorf("unexpected output: %q", out)
		}

		raw, err := os.ReadFile(backup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc services.BackupDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("backup is not valid JSON: %v", err)
		}
		if doc.Version != services.BackupFormatVersion || len(doc.Trades) != 4 {
			t.Errorf("unexpected document: version %d, %d trades", doc.Version, len(doc.Trades))
		}
	})

	t.Run("import_replaces_an_empty_journal", func(t *testing.T) {
		useJournal(t, t.TempDir(), false)
		out, err := run(t, "import", "--in", backup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "imported 4 trades") {
			t.Errorf("unexpected output: %q", out)
		}

		out, err = run(t, "activity", "--limit", "5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, models.ActionImport) {
			t.Errorf("expected an import entry in activity:\n%s", out)
		}

		out, err = run(t, "export")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc services.BackupDocument
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("stdout export is not valid JSON: %v", err)
		}
		if len(doc.Trades) != 4 {
			t.Errorf("expected 4 trades after import, got %d", len(doc.Trades))
		}
	})

	t.Run("import_requires_a_file", func(t *testing.T) {
		useJournal(t, t.TempDir(), false)
		if _, err := run(t, "import"); err == nil {
			t.Error("expected error without --in")
		}
	})

	t.Run("import_rejects_garbage", func(t *testing.T) {
		dir := t.TempDir()
		useJournal(t, dir, false)
		bad := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(bad, []byte(`{"trades": 7}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, "import", "--in", bad); err == nil {
			t.Error("expected error for invalid document")
		}
	})
}

func TestSummaryAndCycles(t *testing.T) {
	useJournal(t, t.TempDir(), true)

	t.Run("summary_prints_the_window", func(t *testing.T) {
		out, err := run(t, "summary", "--range", "trailing_months", "--months", "12")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Window", "Trades", "Net", "Gain ratio"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("summary_rejects_bad_dates", func(t *testing.T) {
		if _, err := run(t, "summary", "--range", "custom", "--start", "not-a-date"); err == nil {
			t.Error("expected error for invalid start date")
		}
	})

	t.Run("cycles_prints_a_table", func(t *testing.T) {
		out, err := run(t, "cycles")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "CYCLE") {
			t.Errorf("expected table header, got:\n%s", out)
		}
	})
}

func TestHashPassphrase(t *testing.T) {
	t.Run("prints_a_matching_bcrypt_hash", func(t *testing.T) {
		out, err := run(t, "hash-passphrase", "wheel-all-day")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hash := strings.TrimSpace(out)
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wheel-all-day")); err != nil {
			t.Errorf("hash does not match passphrase: %v", err)
		}
	})

	t.Run("requires_an_argument", func(t *testing.T) {
		if _, err := run(t, "hash-passphrase"); err == nil {
			t.Error("expected error without a passphrase")
		}
	})
}

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk quota exceeded")
}

func TestWriteAndClose(t *testing.T) {
	t.Run("reports_a_failed_close", func(t *testing.T) {
		w := &closeFailer{}
		err := writeAndClose(w, services.BackupDocument{Version: services.BackupFormatVersion})
		if err == nil || !strings.Contains(err.Error(), "disk quota") {
			t.Errorf("expected the close error, got %v", err)
		}
		if !w.closed || w.Len() == 0 {
			t.Errorf("expected the document written and the writer closed, closed=%v len=%d", w.closed, w.Len())
		}
	})

	t.Run("export_fails_when_the_file_cannot_be_created", func(t *testing.T) {
		useJournal(t, t.TempDir(), false)
		missing := filepath.Join(t.TempDir(), "no-such-dir", "backup.json")
		if _, err := run(t, "export", "--out", missing); err == nil {
			t.Error("expected error for an unwritable path")
		}
	})
}
