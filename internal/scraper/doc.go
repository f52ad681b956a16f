// Package scraper fetches the Wembley Stadium events listing page and
// extracts event records from it.
//
// Extraction anchors on the "Find Out More" links each event card carries,
// walks a bounded number of levels up to the card's heading, and parses the
// card's visible text for date and time tokens. Cards without a parseable
// date are skipped rather than failing the run; a fetch failure aborts the
// run with no partial output.
package scraper
