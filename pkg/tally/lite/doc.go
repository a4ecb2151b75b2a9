// Package lite is the partitioned aggregator. It plans segments, starts one
// goroutine per segment, waits for all of them and reports the sealed total
// together with the wall-clock time of the whole run.
//
// Common usage:
// - Count: count primes in a range with an explicit worker count
// - CountUpTo: count primes in [0, end) with workers from context or hardware
// - CountMatching: same as Count with any pure predicate and segment handlers
// - Run: asynchronous form delivering one tally.Result
// - Verify: cross-check the partitioned total against a sequential scan
//
// The tail policy is read from the context (core.WithTailOptions) and defaults
// to segment.TailTruncate.
package lite
