package main

import (
	"fmt"
	"os"
	"time"

	"wembleycal/internal/calendar"
	"wembleycal/internal/config"
	"wembleycal/internal/event"
)

func main() {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}

	start := time.Date(2025, 9, 27, 17, 0, 0, 0, london)
	concert := &event.Event{
		Title:       "Concert A",
		Start:       start,
		End:         start.Add(3 * time.Hour),
		Description: "One night only, under the arch.",
		Location:    "Wembley Stadium, London",
		URL:         "https://www.wembleystadium.com/events/concert-a",
	}

	day := time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC)
	festival := &event.Event{
		Title:       "Festival B",
		Start:       day,
		End:         day.AddDate(0, 0, 1),
		AllDay:      true,
		Description: "A full day of food, music and family fun.",
		Location:    "Wembley Stadium, London",
	}

	feed := calendar.New(config.Default()).Generate([]*event.Event{concert, festival}, time.Now().UTC())

	filename := "preview-feed.ics"
	if err := os.WriteFile(filename, []byte(feed), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated sample feed: %s\n\n", filename)
	fmt.Println("Import it into your calendar app to check client rendering.")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(feed)
}
