package event

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"
)

// Event represents a single stadium event scraped from the listing page.
//
// Start and End are always the same kind: for a timed event both carry a
// time of day in the reference timezone; for an all-day event both are
// midnight date markers and End is the exclusive following day.
type Event struct {
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	URL         string    `json:"url,omitempty"`
	UID         string    `json:"uid,omitempty"`
}

// timeKey renders a start/end value in the canonical form used for hashing
// and deduplication. All-day values reduce to the date alone.
func (e *Event) timeKey(t time.Time) string {
	if e.AllDay {
		return t.Format("20060102")
	}
	return t.Format("20060102T1504")
}

// Key returns the deduplication key for an event. Two extracted blocks that
// agree on title and start describe the same event.
func (e *Event) Key() string {
	return e.Title + "|" + e.timeKey(e.Start)
}

// GenerateUID derives a stable identifier from the fields that define an
// event's identity. Identical (title, start, end, location) tuples always
// produce the identical UID, so feed consumers see a consistent key across
// regenerations.
func GenerateUID(e *Event, domain string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s-%s-%s-%s", e.Title, e.timeKey(e.Start), e.timeKey(e.End), e.Location)
	return fmt.Sprintf("%x", h.Sum(nil))[:16] + "@" + domain
}

// Dedupe collapses events sharing the same (title, start) key. Later
// occurrences win; the surviving event keeps the position of the first.
func Dedupe(events []*Event) []*Event {
	index := make(map[string]int, len(events))
	out := make([]*Event, 0, len(events))
	for _, evt := range events {
		key := evt.Key()
		if i, seen := index[key]; seen {
			out[i] = evt
			continue
		}
		index[key] = len(out)
		out = append(out, evt)
	}
	return out
}

// Sort orders events ascending by start. On a shared calendar date an
// all-day event sorts ahead of a timed one; ties fall back to the title.
func Sort(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return less(events[i], events[j])
	})
}

func less(a, b *Event) bool {
	ay, am, ad := a.Start.Date()
	by, bm, bd := b.Start.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	if ad != bd {
		return ad < bd
	}
	if a.AllDay != b.AllDay {
		return a.AllDay
	}
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.Title < b.Title
}

// IsUpcoming reports whether the event has not yet finished at the given
// instant. All-day events count as upcoming until their exclusive end date.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.End.After(now)
}

// IsWithinDays reports whether the event starts within the next N days.
// A non-positive N disables the horizon and always returns true.
func (e *Event) IsWithinDays(now time.Time, days int) bool {
	if days <= 0 {
		return true
	}
	return e.Start.Before(now.AddDate(0, 0, days))
}
