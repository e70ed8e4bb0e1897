// Package scheduler dispatches seeds to a fixed-size pool of workers, each of
// which runs one case at a time through an executor.Executor.
//
// # How It Works
//
// A single dispatcher goroutine feeds seeds, in dispatch order, into an
// unbuffered channel. W worker goroutines pull from it, run the case to
// completion and send the CaseResult on the results channel. The results
// channel is closed once every started case has reported, so a consumer can
// simply range over it.
//
// # Guarantees
//
//   - Every seed that is started produces exactly one CaseResult; without
//     cancellation that is every seed in the input, with no duplicates.
//   - Completion order is not dispatch order.
//   - Shuffling changes dispatch order only.
//
// # Cancellation
//
// Cancelling the context stops dispatch. The check happens at the dispatch
// boundary: a worker that receives a seed after cancellation drops it without
// starting it. Cases already running are given an uncancelled context and are
// allowed to finish; their results are still delivered.
package scheduler
