// Package stats provides run tracking for awesomedocs commands.
// It records each pipeline invocation locally and aggregates per-tier
// counts so the stats command can show how pages were sourced over time.
package stats
