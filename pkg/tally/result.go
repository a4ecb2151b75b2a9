package tally

import (
	"time"

	"github.com/google/uuid"
)

// Result is either a value or the error that prevented producing it. A failed
// Result never carries a value, so a failed count cannot be mistaken for a
// count of zero.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isSuccess: false,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Then feeds a successful value into next and passes failures through.
func Then[In, Out any](in Result[In], next func(In) Result[Out]) Result[Out] {
	if !in.isSuccess {
		return Result[Out]{
			err:       in.err,
			createdAt: in.createdAt,
			id:        in.id,
		}
	}
	return next(in.result)
}

// Unpack returns the value and error in the usual Go order.
func (r Result[T]) Unpack() (T, error) {
	return r.result, r.err
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && r.err != nil
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
