// Package step executes a single process invocation of a pipeline: it resolves
// seed placeholders, wires the configured input file to standard input,
// captures standard output and standard error in full, measures wall-clock
// time and mirrors the captures to their configured files.
//
// A non-zero exit status is not an error at this level; it is reported in the
// Output and interpreted by the caller. Only a failure to launch the program
// (or to prepare its input) is returned as a SpawnError.
package step
