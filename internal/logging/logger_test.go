package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestNewWritesJSONAndMirrorsWhenVerbose(t *testing.T) {
	ws := t.TempDir()
	var stderr bytes.Buffer
	logger, err := New(ws, Options{Level: "debug", Verbose: true, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("workspace written", "files", 3)
	logger.Debug("detail")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(Path(ws))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(lines), data)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected json record: %v", err)
	}
	if record["msg"] != "workspace written" || record["files"] != float64(3) {
		t.Fatalf("unexpected record %v", record)
	}
	if !strings.Contains(stderr.String(), "msg=\"workspace written\"") {
		t.Fatalf("expected text mirror, got %q", stderr.String())
	}
}

func TestLevelFiltersRecords(t *testing.T) {
	ws := t.TempDir()
	logger, err := New(ws, Options{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	logger.Close()
	data, _ := os.ReadFile(Path(ws))
	if strings.Contains(string(data), "quiet") || !strings.Contains(string(data), "loud") {
		t.Fatalf("unexpected filtering: %s", data)
	}
}

func TestNoFileUntilFirstRecord(t *testing.T) {
	ws := t.TempDir()
	logger, err := New(ws, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()
	if _, err := os.Stat(Path(ws)); !os.IsNotExist(err) {
		t.Fatalf("expected no log file yet, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	for _, level := range []string{"", "DEBUG", "warning", "error"} {
		if _, err := ParseLevel(level); err != nil {
			t.Fatalf("ParseLevel(%q): %v", level, err)
		}
	}
}

func TestDiscardAndNilSafety(t *testing.T) {
	Discard().Printf("ignored %d", 1)
	var nilLogger *Logger
	nilLogger.Printf("ignored")
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("nil Close returned %v", err)
	}
}
