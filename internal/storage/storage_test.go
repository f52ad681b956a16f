package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wembleycal/internal/event"
)

func TestWriteFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "calendar.ics")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	feed := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	if err := s.WriteFeed(feed); err != nil {
		t.Fatalf("WriteFeed failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != string(feed) {
		t.Errorf("output mismatch:\ngot  %q\nwant %q", got, feed)
	}
}

func TestWriteFeed_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.ics")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := s.WriteFeed([]byte("old")); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := s.WriteFeed([]byte("new")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("expected replaced content, got %q", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("listing output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteEventsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "events.json")

	start := time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{
			Title:    "Festival B",
			Start:    start,
			End:      start.AddDate(0, 0, 1),
			AllDay:   true,
			Location: "Wembley Stadium, London",
		},
	}

	if err := WriteEventsJSON(events, path); err != nil {
		t.Fatalf("WriteEventsJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var decoded []*event.Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Title != "Festival B" || !decoded[0].AllDay {
		t.Errorf("unexpected export content: %+v", decoded)
	}
}
