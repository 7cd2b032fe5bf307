package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false, true, true)

	l.Info("hidden %d", 1)
	l.Success("hidden")
	l.Debug("hidden")
	l.Warning("careful %s", "now")
	l.Error("broken")

	want := "[WARNING] careful now\n[ERROR] broken\n"
	if buf.String() != want {
		t.Fatalf("quiet logger output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	l = newLogger(&buf, true, false, true)
	l.Debug("probe %s", "sdb")
	if buf.String() != "[DEBUG] probe sdb\n" {
		t.Fatalf("verbose logger output = %q", buf.String())
	}
}

func TestTable_Print(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable("IDX", "MODEL", "STATUS")
	table.AddRow("1", "SanDisk Ultra", "Warning")
	table.AddRow("12", "Stick", "Ready")
	table.Print(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"IDX  MODEL          STATUS",
		"1    SanDisk Ultra  Warning",
		"12   Stick          Ready",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTable_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewTable("A").Print(&buf)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestLineUI_Ask(t *testing.T) {
	var out bytes.Buffer
	u := NewLineUI(strings.NewReader(" YES \r\nYES"), &out)

	first, err := u.Ask("Select: ")
	if err != nil || first != " YES " {
		t.Fatalf("Ask = %q, %v", first, err)
	}
	second, err := u.Ask("Confirm: ")
	if err != nil || second != "YES" {
		t.Fatalf("Ask without trailing newline = %q, %v", second, err)
	}
	if _, err := u.Ask("Again: "); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != "Select: Confirm: Again: " {
		t.Fatalf("prompts = %q", out.String())
	}
}
