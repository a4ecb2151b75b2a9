// Package solo contains synchronous, single-goroutine primitives that return
// tally.Result values. They form the building blocks of the partitioned
// aggregator and double as its reference implementation.
//
// Highlights:
// - Validate: check a range, worker count and tail policy and plan segments
// - Scan: count one segment
// - Reference: count a whole range without partitioning
// - Finally: collapse a Result into a concrete value
package solo
