// Package persist writes the durable artifacts of a finished run: one JSON
// record per run under json/ and a row in the append-only summary.md.
package persist
