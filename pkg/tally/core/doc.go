// Package core contains the coordination plumbing for a partitioned count:
// the mutex-guarded Accumulator, the Locomotive that drives one segment,
// worker and tail options carried by context, and channel helpers. It does
// not decide what is counted; packages solo and lite supply that.
package core
