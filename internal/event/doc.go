// Package event provides the event record extracted from the Wembley Stadium
// events page, plus the derivation rules that keep the generated feed stable:
// deterministic UIDs, deduplication by (title, start), and the chronological
// ordering that places all-day entries ahead of timed ones on the same date.
package event
