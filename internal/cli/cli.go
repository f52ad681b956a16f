package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wembleycal/internal/calendar"
	"wembleycal/internal/config"
	"wembleycal/internal/event"
	"wembleycal/internal/logger"
	"wembleycal/internal/scraper"
	"wembleycal/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig     string
	flagOutput     string
	flagFromFile   string
	flagDays       int
	flagDryRun     bool
	flagEventsJSON string
	flagFormat     string
	flagVerbose    bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wembleycal",
		Short: "Generate an iCalendar feed from the Wembley Stadium events page",
		Long: `Scrapes the Wembley Stadium events listing page and writes a calendar
feed (.ics) of the events found, with stable UIDs so calendar clients can
track entries across regenerations.`,
		SilenceUsage: true,
		RunE:         runGenerate,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config (defaults used when absent)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output path, overriding the configured one")
	cmd.Flags().StringVar(&flagFromFile, "from-file", "", "Parse a local HTML file instead of fetching")
	cmd.Flags().IntVar(&flagDays, "days", 0, "Only include events starting within N days (0 = all)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the feed to stdout instead of writing it")
	cmd.Flags().StringVar(&flagEventsJSON, "events-json", "", "Also export extracted events as JSON to this path")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Run report format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}

	sc, err := scraper.New(cfg)
	if err != nil {
		return err
	}

	var events []*event.Event
	if flagFromFile != "" {
		f, err := os.Open(flagFromFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		events, err = sc.Extract(f)
		if err != nil {
			return err
		}
	} else {
		events, err = sc.FetchEvents()
		if err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}
	}

	now := time.Now().UTC()
	if flagDays > 0 {
		events = withinHorizon(events, now, flagDays)
	}

	feed := calendar.New(cfg).Generate(events, now)

	if flagEventsJSON != "" {
		if err := storage.WriteEventsJSON(events, flagEventsJSON); err != nil {
			return err
		}
	}

	logger.Debug("run metrics", logger.MetricsSnapshot())

	if flagDryRun {
		fmt.Fprint(cmd.OutOrStdout(), feed)
		return nil
	}

	store, err := storage.New(cfg.Output)
	if err != nil {
		return err
	}
	if err := store.WriteFeed([]byte(feed)); err != nil {
		return err
	}

	report := &RunReport{
		GeneratedAt: now,
		EventCount:  len(events),
		Events:      events,
		OutputPath:  store.Path(),
		Bytes:       len(feed),
	}
	return WriteOutput(cmd.OutOrStdout(), report, format, flagVerbose)
}

// withinHorizon keeps events that have not finished and start inside the
// next N days.
func withinHorizon(events []*event.Event, now time.Time, days int) []*event.Event {
	kept := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if evt.IsUpcoming(now) && evt.IsWithinDays(now, days) {
			kept = append(kept, evt)
		}
	}
	return kept
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
