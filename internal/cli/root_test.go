package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/audit"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("test-version")
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("expected version output to contain 'test-version', got: %s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"audit", "status", "ingest", "migrate", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestAuditRejectsBlankCompany(t *testing.T) {
	_, err := executeCommand("audit", "  ")
	if !errors.Is(err, audit.ErrEmptyCompanyName) {
		t.Fatalf("expected ErrEmptyCompanyName, got %v", err)
	}
}

func TestAuditRejectsUnknownFormat(t *testing.T) {
	_, err := executeCommand("audit", "Acme", "--output", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected format error, got %v", err)
	}
	// reset for later tests sharing rootCmd
	_ = auditCmd.Flags().Set("output", "json")
}

func TestMigrateNeedsDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := executeCommand("migrate"); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestWriteOutput(t *testing.T) {
	v := map[string]any{"status": "completed", "themes": []string{"Water"}}

	var buf bytes.Buffer
	if err := writeOutput(&buf, "json", v); err != nil {
		t.Fatalf("writeOutput(json) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "completed"`) {
		t.Fatalf("unexpected json output %s", buf.String())
	}

	buf.Reset()
	if err := writeOutput(&buf, "yaml", v); err != nil {
		t.Fatalf("writeOutput(yaml) error = %v", err)
	}
	want := "status: completed\nthemes:\n  - Water\n"
	if buf.String() != want {
		t.Fatalf("unexpected yaml output %q", buf.String())
	}
}
