package core

import "github.com/ib-77/segcount/pkg/tally"

// Deliver returns a channel that yields r once and is then closed.
func Deliver[T any](r tally.Result[T]) <-chan tally.Result[T] {
	out := make(chan tally.Result[T], 1)
	out <- r
	close(out)
	return out
}

// Await returns the first Result on ch. A channel closed without a value
// yields an empty Result.
func Await[T any](ch <-chan tally.Result[T]) tally.Result[T] {
	r, ok := <-ch
	if !ok {
		return tally.Result[T]{}
	}
	return r
}
