package solo

import (
	"context"
	"fmt"
	"testing"

	cerrors "github.com/ib-77/segcount/pkg/errors"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok := Validate(ctx, segment.UpTo(10), 2, segment.TailTruncate)
	require.True(t, ok.IsSuccess())
	assert.Len(t, ok.Result(), 2)

	bad := Validate(ctx, segment.UpTo(10), 0, segment.TailTruncate)
	require.True(t, bad.IsFailure())
	assert.Nil(t, bad.Result())
	assert.True(t, cerrors.ErrInvalidWorkerCount.Equal(bad.Err()))
}

func TestScan(t *testing.T) {
	t.Parallel()

	seg := segment.Segment{Index: 3, Range: segment.Range{Start: 90, End: 100}}
	res := Scan(context.Background(), seg, primes.IsPrime)
	require.True(t, res.IsSuccess())
	assert.Equal(t, uint64(1), res.Result().Count)
	assert.Equal(t, seg, res.Result().Segment)
}

func TestReference(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	res := Reference(ctx, segment.UpTo(10), primes.IsPrime)
	require.True(t, res.IsSuccess())
	assert.Equal(t, uint64(4), res.Result())

	failed := Reference(ctx, segment.Range{Start: 4, End: 4}, primes.IsPrime)
	require.True(t, failed.IsFailure())
	assert.True(t, cerrors.ErrInvalidRange.Equal(failed.Err()))
}

func TestFinally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	render := func(r tally.Result[uint64]) string {
		return Finally(ctx, r,
			func(n uint64) string { return fmt.Sprintf("count:%d", n) },
			func(err error) string { return "failed" })
	}

	assert.Equal(t, "count:0", render(tally.Success(uint64(0))))
	assert.Equal(t, "failed", render(Reference(ctx, segment.UpTo(0), primes.IsPrime)))
}
