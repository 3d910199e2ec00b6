package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	book := ForWorkspace(dir)
	for i := 0; i < 5; i++ {
		if err := book.Info("entry-%d", i); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
	if book.Path() != filepath.Join(dir, "logs", FileName) {
		t.Fatalf("unexpected path %s", book.Path())
	}
}

func TestEntryFormat(t *testing.T) {
	dir := t.TempDir()
	clock := func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.FixedZone("x", 3600)) }
	book := New(filepath.Join(dir, "journal.log"), WithClock(clock), WithRunID("run42"))
	if err := book.Warn("skipped %s", "checks"); err != nil {
		t.Fatal(err)
	}
	lines, _ := book.Tail(1)
	want := "2026-03-02T08:00:00Z WARN  [run42] skipped checks"
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("expected %q, got %v", want, lines)
	}
}

func TestNoFileUntilFirstEntry(t *testing.T) {
	dir := t.TempDir()
	book := ForWorkspace(dir)
	if lines, total := book.Tail(10); lines != nil || total != 0 {
		t.Fatalf("expected empty tail, got %v %d", lines, total)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Fatalf("expected logs dir to be absent, got %v", err)
	}
	if len(book.RunID()) != 8 {
		t.Fatalf("expected short run id, got %q", book.RunID())
	}
}
