// Package storage writes the generated feed to disk. Writes go through a
// temporary file and rename so a failed run never truncates a previously
// published feed. It can also export the extracted event records as JSON
// for downstream tooling.
package storage
