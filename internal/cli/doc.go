// Package cli wires the pipeline together: load configuration, fetch and
// extract events, encode the feed, and write it out. One invocation is one
// complete regeneration; there is no state carried between runs.
package cli
