package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := &Table{Headers: []string{"ID", "NICKNAME", "SCORE"}}
	table.AddRow("kkpt-1", "mina", "100")
	table.AddRow("kkpt-2", "jun", "25")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "SCORE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "jun") {
		t.Errorf("row line = %q", lines[2])
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, map[string]int{"total": 3}); err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(buf.String(), "\"total\": 3") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("json format did not produce a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatTable).(*TableFormatter); !ok {
		t.Error("table format did not produce a TableFormatter")
	}
	if _, ok := NewFormatter("bogus").(*TableFormatter); !ok {
		t.Error("unknown format did not fall back to table")
	}
}
