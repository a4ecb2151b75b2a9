// Package primes contains the predicate evaluated by the counting engine:
// primality by trial division over 6k±1 candidates.
//
// Highlights:
// - IsPrime: pure, allocation free, safe for any uint64 input
// - Predicate: the function shape accepted by the aggregator
// - CountSequential: unpartitioned reference scan used to check results
package primes
