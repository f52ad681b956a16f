package calendar

import (
	"fmt"
	"strings"
	"time"

	"wembleycal/internal/config"
	"wembleycal/internal/event"
)

// Generator encodes event records into an iCalendar feed document.
//
// Clients key on property order and the exact VALUE=DATE / UTC forms, so
// the document is written line by line rather than through a library
// encoder.
type Generator struct {
	name        string
	description string
	timezone    string
	prodID      string
	uidDomain   string
}

// New creates a Generator carrying the feed-level metadata.
func New(cfg *config.Config) *Generator {
	return &Generator{
		name:        cfg.Calendar.Name,
		description: cfg.Calendar.Description,
		timezone:    cfg.Calendar.Timezone,
		prodID:      cfg.Calendar.ProdID,
		uidDomain:   cfg.UIDDomain,
	}
}

// Generate encodes the events, in input order, into a complete VCALENDAR
// document. now is the generation instant recorded in each DTSTAMP.
func (g *Generator) Generate(events []*event.Event, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	fmt.Fprintf(&ics, "PRODID:%s\r\n", g.prodID)
	ics.WriteString("VERSION:2.0\r\n")
	fmt.Fprintf(&ics, "X-WR-CALNAME:%s\r\n", escapeICS(g.name))
	fmt.Fprintf(&ics, "X-WR-CALDESC:%s\r\n", escapeICS(g.description))
	fmt.Fprintf(&ics, "X-WR-TIMEZONE:%s\r\n", g.timezone)
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(now)
	for _, evt := range events {
		g.writeEvent(&ics, evt, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func (g *Generator) writeEvent(ics *strings.Builder, evt *event.Event, stamp string) {
	uid := evt.UID
	if uid == "" {
		uid = event.GenerateUID(evt, g.uidDomain)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s\r\n", uid)
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)

	if evt.AllDay {
		// An all-day record carrying a time of day means start/end kinds
		// were mixed upstream. That is a bug, not bad input; refuse to
		// emit a malformed feed.
		if !isMidnight(evt.Start) || !isMidnight(evt.End) {
			panic(fmt.Sprintf("calendar: all-day event %q carries a time of day (start=%v end=%v)",
				evt.Title, evt.Start, evt.End))
		}
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", evt.Start.Format("20060102"))
		fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", evt.End.Format("20060102"))
	} else {
		fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(evt.Start))
		fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(evt.End))
	}

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(evt.Title))
	if evt.Description != "" {
		fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(evt.Description))
	}
	if evt.Location != "" {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(evt.Location))
	}
	if evt.URL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", escapeICS(evt.URL))
	}
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime renders an instant in the feed's UTC timestamp form.
// Timed events carry their civil timezone, so the conversion applies the
// zone's seasonal offset.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0
}

// escapeICS escapes text per RFC 5545. Backslashes are escaped first so
// the backslashes introduced by the other substitutions survive intact.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}
