// Package history reads persisted run records back and recomputes their
// relative scores against the current best-score store. It never writes.
package history
