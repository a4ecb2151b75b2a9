// Package tally holds the values produced by a partitioned count: Result[T]
// for anything that may fail, SegmentCount for one worker's contribution and
// Outcome for a finished run. Sink is the boundary to whatever displays or
// stores an Outcome.
package tally
