package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"wembleycal/internal/event"
)

// OutputFormat specifies the run report format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunReport summarizes a completed generation run.
type RunReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	EventCount  int            `json:"event_count"`
	Events      []*event.Event `json:"events,omitempty"`
	OutputPath  string         `json:"output_path"`
	Bytes       int            `json:"bytes"`
}

// WriteOutput writes the run report in the requested format.
func WriteOutput(w io.Writer, report *RunReport, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, report *RunReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeText(w io.Writer, report *RunReport, verbose bool) error {
	fmt.Fprintf(w, "Wrote %s (%d bytes, %d events)\n",
		report.OutputPath, report.Bytes, report.EventCount)

	if !verbose {
		return nil
	}
	for _, evt := range report.Events {
		when := evt.Start.Format("2006-01-02 15:04")
		if evt.AllDay {
			when = evt.Start.Format("2006-01-02") + " (all day)"
		}
		fmt.Fprintf(w, "  %s  %s\n", when, evt.Title)
	}
	return nil
}
