// Package report aggregates case results as they stream in from the
// scheduler and renders them, either as a live console table or as one JSON
// object per line for machine consumers.
//
// The Aggregator is the single point through which completed cases pass:
// workers hand results to it over a channel and only its goroutine mutates
// the running Stats. Other goroutines observe progress through immutable
// Snapshots.
package report
