package event

import (
	"regexp"
	"strings"
	"time"
)

// Listing blocks carry dates like "27 Sep 2025" and times like "17:00",
// or the literal "TBC" when the kick-off time is not yet announced.
var (
	datePattern = regexp.MustCompile(`\d{2} \w{3} \d{4}`)
	timePattern = regexp.MustCompile(`(?i)\d{2}:\d{2}|TBC`)
)

const dateLayout = "02 Jan 2006"

// ParseDateTime extracts the date and time tokens from a block of visible
// text and resolves them into a start/end pair.
//
// A valid HH:MM token yields a timed event at that civil time in loc,
// lasting the given default duration. A missing or "TBC" time token yields
// an all-day event covering exactly one day. Blocks without a parseable
// date yield ok=false and produce no record.
func ParseDateTime(text string, loc *time.Location, duration time.Duration) (start, end time.Time, allDay bool, ok bool) {
	dateToken := datePattern.FindString(text)
	if dateToken == "" {
		return time.Time{}, time.Time{}, false, false
	}
	day, err := time.Parse(dateLayout, dateToken)
	if err != nil {
		return time.Time{}, time.Time{}, false, false
	}

	timeToken := timePattern.FindString(text)
	if timeToken != "" && !strings.EqualFold(timeToken, "TBC") {
		// An out-of-range clock value (e.g. "27:00") is treated the same
		// as a missing time token.
		if clock, err := time.Parse("15:04", timeToken); err == nil {
			start = time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
			end = start.Add(duration)
			return start, end, false, true
		}
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 0, 1)
	return start, end, true, true
}
