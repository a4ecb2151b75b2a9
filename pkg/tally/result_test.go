package tally

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	t.Parallel()

	r := Success(uint64(0))
	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.False(t, r.IsEmpty())
	assert.NotEqual(t, uuid.Nil, r.Id())
	assert.False(t, r.CreatedAt().IsZero())

	v, err := r.Unpack()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestFail_IsNotAZeroCount(t *testing.T) {
	t.Parallel()

	r := Fail[uint64](errors.New("boom"))
	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.EqualError(t, r.Err(), "boom")

	var zero Result[uint64]
	assert.True(t, zero.IsEmpty())
	assert.False(t, zero.IsFailure())
}

func TestThen(t *testing.T) {
	t.Parallel()

	doubled := Then(Success(21), func(n int) Result[int] { return Success(n * 2) })
	require.True(t, doubled.IsSuccess())
	assert.Equal(t, 42, doubled.Result())

	called := false
	failed := Fail[int](errors.New("bad"))
	out := Then(failed, func(n int) Result[string] {
		called = true
		return Success("x")
	})
	assert.False(t, called)
	assert.True(t, out.IsFailure())
	assert.Equal(t, failed.Id(), out.Id())
	assert.EqualError(t, out.Err(), "bad")
}

func TestOutcome_Covered(t *testing.T) {
	t.Parallel()

	full := Outcome{Range: segment.UpTo(100), Uncovered: segment.Range{Start: 100, End: 100}}
	assert.Equal(t, segment.UpTo(100), full.Covered())

	cut := Outcome{Range: segment.UpTo(100), Uncovered: segment.Range{Start: 98, End: 100}}
	assert.Equal(t, segment.UpTo(98), cut.Covered())
}
