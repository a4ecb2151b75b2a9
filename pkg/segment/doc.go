// Package segment splits a half-open numeric range into contiguous,
// fixed-width segments, one per worker.
//
// The width is the floor of the range length divided by the worker count.
// What happens to the remainder is a TailPolicy: TailTruncate leaves it
// uncovered, TailExtendLast hands it to the last segment.
package segment
