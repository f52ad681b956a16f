package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("entries below minimum level should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("entries at or above minimum level should appear:\n%s", out)
	}
}

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("fetch failed", Fields{"url": "https://example.com"}, errors.New("timeout"))

	var decoded struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
		Error     string                 `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("log entry is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded.Level != "ERROR" {
		t.Errorf("level = %q, want ERROR", decoded.Level)
	}
	if decoded.Message != "fetch failed" {
		t.Errorf("message = %q", decoded.Message)
	}
	if decoded.Fields["url"] != "https://example.com" {
		t.Errorf("missing structured field: %+v", decoded.Fields)
	}
	if decoded.Error != "timeout" {
		t.Errorf("error = %q", decoded.Error)
	}
	if _, err := time.Parse(time.RFC3339, decoded.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %q", decoded.Timestamp)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("scrape.anchors")
	m.IncrCounter("scrape.anchors")
	m.IncrCounter("scrape.skipped_no_date")
	m.RecordTiming("scrape.fetch", 100*time.Millisecond)
	m.RecordTiming("scrape.fetch", 50*time.Millisecond)

	snap := m.Snapshot()

	counters, ok := snap["counters"].(map[string]int64)
	if !ok {
		t.Fatalf("missing counters in snapshot: %+v", snap)
	}
	if counters["scrape.anchors"] != 2 {
		t.Errorf("scrape.anchors = %d, want 2", counters["scrape.anchors"])
	}
	if counters["scrape.skipped_no_date"] != 1 {
		t.Errorf("scrape.skipped_no_date = %d, want 1", counters["scrape.skipped_no_date"])
	}

	timings, ok := snap["timings"].(map[string]string)
	if !ok {
		t.Fatalf("missing timings in snapshot: %+v", snap)
	}
	if timings["scrape.fetch"] != "150ms" {
		t.Errorf("scrape.fetch = %q, want 150ms", timings["scrape.fetch"])
	}
}
