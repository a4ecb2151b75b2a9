package lite

import (
	"context"
	"sync"
	"testing"

	cerrors "github.com/ib-77/segcount/pkg/errors"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/ib-77/segcount/pkg/tally/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_PrimesBelowHundred(t *testing.T) {
	t.Parallel()

	outcome, err := Count(context.Background(), segment.UpTo(100), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), outcome.Total)
	assert.Greater(t, outcome.Elapsed.Nanoseconds(), int64(0))
	assert.Equal(t, 4, outcome.Workers)
	assert.Len(t, outcome.Segments, 4)
	assert.True(t, outcome.Uncovered.IsEmpty())
	assert.Equal(t, segment.UpTo(100), outcome.Covered())
}

func TestCount_PrimesBelowTenSingleWorker(t *testing.T) {
	t.Parallel()

	outcome, err := Count(context.Background(), segment.UpTo(10), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), outcome.Total)
	require.Len(t, outcome.Segments, 1)
	assert.Equal(t, segment.UpTo(10), outcome.Segments[0].Segment.Range)
}

func TestCount_ZeroWorkersIsConfigError(t *testing.T) {
	t.Parallel()

	called := false
	handlers := core.Handlers{
		OnStart: func(ctx context.Context, seg segment.Segment) { called = true },
	}
	outcome, err := CountMatching(context.Background(), segment.UpTo(100), 0, primes.IsPrime, handlers)
	require.Error(t, err)
	assert.True(t, cerrors.ErrInvalidWorkerCount.Equal(err))
	assert.True(t, cerrors.IsConfigError(err))
	assert.False(t, called, "no segment may start on a configuration error")
	assert.Equal(t, tally.Outcome{}, outcome)
}

func TestCount_InvalidRanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := CountUpTo(ctx, 0)
	assert.True(t, cerrors.ErrInvalidRange.Equal(err))

	_, err = Count(ctx, segment.Range{Start: 10, End: 10}, 2)
	assert.True(t, cerrors.ErrInvalidRange.Equal(err))

	_, err = Count(ctx, segment.Range{Start: 11, End: 10}, 2)
	assert.True(t, cerrors.ErrInvalidRange.Equal(err))

	_, err = Count(core.WithTailOptions(ctx, segment.TailPolicy(9)), segment.UpTo(10), 2)
	assert.True(t, cerrors.ErrUnknownTailPolicy.Equal(err))
}

func TestCount_MatchesReferenceScan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := segment.UpTo(100)
	for _, workers := range []int{1, 2, 3, 7} {
		outcome, err := Count(ctx, r, workers)
		require.NoError(t, err)

		// covered prefix is [0, w*workers)
		w := segment.Width(r, workers)
		reference := primes.CountSequential(0, w*uint64(workers), primes.IsPrime)
		assert.Equal(t, reference, outcome.Total, "workers=%d", workers)
		assert.Equal(t, segment.Range{Start: w * uint64(workers), End: 100}, outcome.Uncovered)
	}
}

func TestCount_TruncatedTailIsNotCounted(t *testing.T) {
	t.Parallel()

	// 4 workers over [0, 30) cover [0, 28); the prime 29 is never scanned.
	outcome, err := Count(context.Background(), segment.UpTo(30), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), outcome.Total)
	assert.Equal(t, segment.Range{Start: 28, End: 30}, outcome.Uncovered)
	assert.Equal(t, primes.CountSequential(0, 30, primes.IsPrime)-1, outcome.Total)
}

func TestCount_ExtendLastMatchesFullScan(t *testing.T) {
	t.Parallel()

	ctx := core.WithTailOptions(context.Background(), segment.TailExtendLast)
	reference := primes.CountSequential(0, 1000, primes.IsPrime)
	for workers := 1; workers <= 16; workers++ {
		outcome, err := Count(ctx, segment.UpTo(1000), workers)
		require.NoError(t, err)
		assert.Equal(t, reference, outcome.Total, "workers=%d", workers)
		assert.Equal(t, segment.TailExtendLast, outcome.Tail)
		assert.True(t, outcome.Uncovered.IsEmpty())
	}
}

func TestCount_IndependentOfWorkersWhenDivisible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := segment.UpTo(720)
	var totals []uint64
	for _, workers := range []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 16} {
		outcome, err := Count(ctx, r, workers)
		require.NoError(t, err)
		totals = append(totals, outcome.Total)
	}
	for _, total := range totals {
		assert.Equal(t, uint64(128), total)
	}
}

func TestCount_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := segment.Range{Start: 1_000, End: 50_000}
	first, err := Count(ctx, r, 3)
	require.NoError(t, err)
	for range 5 {
		again, err := Count(ctx, r, 3)
		require.NoError(t, err)
		assert.Equal(t, first.Total, again.Total)
		assert.NotEqual(t, first.RunID, again.RunID)
	}
}

func TestCount_SegmentResultsSumToTotal(t *testing.T) {
	t.Parallel()

	outcome, err := Count(context.Background(), segment.UpTo(100_000), 6)
	require.NoError(t, err)

	var sum uint64
	for i, sc := range outcome.Segments {
		assert.Equal(t, i, sc.Segment.Index)
		sum += sc.Count
	}
	assert.Equal(t, outcome.Total, sum)
	assert.Equal(t, uint64(9592), outcome.Total)
}

func TestCountMatching_CustomPredicateAndHandlers(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		started = map[int]int{}
		done    = map[int]uint64{}
	)
	handlers := core.Handlers{
		OnStart: func(ctx context.Context, seg segment.Segment) {
			mu.Lock()
			defer mu.Unlock()
			started[seg.Index]++
		},
		OnDone: func(ctx context.Context, sc tally.SegmentCount) {
			mu.Lock()
			defer mu.Unlock()
			done[sc.Segment.Index] += sc.Count
		},
	}

	multipleOfFive := func(n uint64) bool { return n%5 == 0 }
	outcome, err := CountMatching(context.Background(), segment.UpTo(100), 5, multipleOfFive, handlers)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), outcome.Total)

	require.Len(t, started, 5)
	require.Len(t, done, 5)
	for i := range 5 {
		assert.Equal(t, 1, started[i], "segment %d started once", i)
		assert.Equal(t, uint64(4), done[i], "segment %d", i)
	}
}

func TestCountMatching_NilPredicateCountsPrimes(t *testing.T) {
	t.Parallel()

	outcome, err := CountMatching(context.Background(), segment.UpTo(100), 2, nil, core.Handlers{})
	require.NoError(t, err)
	assert.Equal(t, uint64(25), outcome.Total)
}

func TestCountUpTo_WorkersFromContext(t *testing.T) {
	t.Parallel()

	ctx := core.WithWorkerOptions(context.Background(), 3)
	outcome, err := CountUpTo(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, outcome.Workers)
	assert.Equal(t, uint64(25), outcome.Total)

	outcome, err = CountUpTo(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, core.Parallelism(), outcome.Workers)
	assert.GreaterOrEqual(t, outcome.Workers, 1)
}

func TestRun_DeliversOneResult(t *testing.T) {
	t.Parallel()

	ctx := core.WithWorkerOptions(context.Background(), 4)
	var results []tally.Result[tally.Outcome]
	for r := range Run(ctx, segment.UpTo(100), primes.IsPrime, core.Handlers{}) {
		results = append(results, r)
	}
	require.Len(t, results, 1)
	require.True(t, results[0].IsSuccess())
	assert.Equal(t, uint64(25), results[0].Result().Total)
}

func TestRun_ConfigErrorIsFailureNotZero(t *testing.T) {
	t.Parallel()

	ctx := core.WithWorkerOptions(context.Background(), 0)
	res := core.Await(Run(ctx, segment.UpTo(100), primes.IsPrime, core.Handlers{}))
	require.True(t, res.IsFailure())
	assert.False(t, res.IsSuccess())
	assert.True(t, cerrors.ErrInvalidWorkerCount.Equal(res.Err()))

	zero := core.Await(Run(core.WithWorkerOptions(context.Background(), 1),
		segment.Range{Start: 24, End: 29}, primes.IsPrime, core.Handlers{}))
	require.True(t, zero.IsSuccess())
	assert.Equal(t, uint64(0), zero.Result().Total)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	outcome, reference, err := Verify(ctx, segment.UpTo(10_000), 7, core.Handlers{})
	require.NoError(t, err)
	assert.Equal(t, reference, outcome.Total)

	outcome, reference, err = Verify(ctx, segment.UpTo(3), 8, core.Handlers{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), outcome.Total)
	assert.Equal(t, uint64(0), reference)

	_, _, err = Verify(ctx, segment.UpTo(10), 0, core.Handlers{})
	assert.True(t, cerrors.ErrInvalidWorkerCount.Equal(err))
}

func TestVerify_HandlersSeeEverySegment(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		done    = map[int]uint64{}
		started int
	)
	handlers := core.Handlers{
		OnStart: func(ctx context.Context, seg segment.Segment) {
			mu.Lock()
			defer mu.Unlock()
			started++
		},
		OnDone: func(ctx context.Context, sc tally.SegmentCount) {
			mu.Lock()
			defer mu.Unlock()
			done[sc.Segment.Index] = sc.Count
		},
	}

	outcome, reference, err := Verify(context.Background(), segment.UpTo(1000), 5, handlers)
	require.NoError(t, err)
	assert.Equal(t, uint64(168), reference)
	assert.Equal(t, 5, started)
	require.Len(t, done, 5)

	var sum uint64
	for _, n := range done {
		sum += n
	}
	assert.Equal(t, outcome.Total, sum)
}

func TestRun_HandlersOncePerPlannedSegment(t *testing.T) {
	t.Parallel()

	ctx := core.WithTailOptions(core.WithWorkerOptions(context.Background(), 4), segment.TailExtendLast)
	var (
		mu   sync.Mutex
		seen []segment.Segment
	)
	handlers := core.Handlers{
		OnStart: func(ctx context.Context, seg segment.Segment) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, seg)
		},
	}

	res := core.Await(Run(ctx, segment.UpTo(30), primes.IsPrime, handlers))
	require.True(t, res.IsSuccess())
	assert.Equal(t, uint64(10), res.Result().Total)

	want, err := segment.Plan(segment.UpTo(30), 4, segment.TailExtendLast)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, seen)
	assert.True(t, res.Result().Uncovered.IsEmpty())
}
