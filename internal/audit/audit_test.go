package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
)

func TestDisabledLoggerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer logger.Close()

	if logger.Enabled() {
		t.Error("disabled logger reports enabled")
	}
	if err := logger.LogExport("a.jpg", "a.csv", nil, "", "", "Name", ""); err != nil {
		t.Errorf("Log on disabled logger: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("disabled logger created files: %v", entries)
	}
}

func TestLogWritesJSONLines(t *testing.T) {
	logger, err := New(t.TempDir(), true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer logger.Close()

	if logger.Session() == "" {
		t.Error("enabled logger has no session id")
	}

	if err := logger.LogExport("/shots/a.jpg", "/shots/a.csv", []string{"Scene"}, "aaa", "bbb", "Name", "preset"); err != nil {
		t.Fatalf("LogExport: %v", err)
	}
	if err := logger.LogPresetSave("day3", []string{"Scene", "Take"}); err != nil {
		t.Fatalf("LogPresetSave: %v", err)
	}
	if err := logger.LogBatch(12, "day3"); err != nil {
		t.Fatalf("LogBatch: %v", err)
	}

	f, err := os.Open(logger.Path())
	if err != nil {
		t.Fatalf("open audit file: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		events = append(events, entry)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0]["event"] != "export" || events[1]["event"] != "preset_save" || events[2]["event"] != "batch_apply" {
		t.Errorf("event order wrong: %v %v %v", events[0]["event"], events[1]["event"], events[2]["event"])
	}
	for i, e := range events {
		if e["session"] != logger.Session() {
			t.Errorf("event %d session = %v, want %s", i, e["session"], logger.Session())
		}
		if e["timestamp"] == "" || e["os"] == "" {
			t.Errorf("event %d missing envelope fields: %v", i, e)
		}
	}
	if events[0]["image_sha256"] != "aaa" || events[0]["join_key"] != "Name" {
		t.Errorf("export payload wrong: %v", events[0])
	}
}
