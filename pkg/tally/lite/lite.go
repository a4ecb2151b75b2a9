package lite

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/ib-77/segcount/pkg/tally/core"
	"github.com/ib-77/segcount/pkg/tally/solo"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const defaultTailPolicy = segment.TailTruncate

func Count(ctx context.Context, r segment.Range, workers int) (tally.Outcome, error) {
	return CountMatching(ctx, r, workers, primes.IsPrime, core.Handlers{})
}

// CountUpTo counts primes in [0, end). The worker count comes from
// core.WithWorkerOptions, falling back to core.Parallelism.
func CountUpTo(ctx context.Context, end uint64) (tally.Outcome, error) {
	return Count(ctx, segment.UpTo(end), core.GetWorkerCount(ctx, core.Parallelism()))
}

// CountMatching counts the values in r satisfying pred using one goroutine per
// segment. Configuration errors are returned before any goroutine starts.
// A nil pred counts primes.
func CountMatching(ctx context.Context, r segment.Range, workers int,
	pred primes.Predicate, handlers core.Handlers) (tally.Outcome, error) {

	policy := core.GetTailPolicy(ctx, defaultTailPolicy)
	plan := solo.Validate(ctx, r, workers, policy)
	if !plan.IsSuccess() {
		return tally.Outcome{}, plan.Err()
	}
	return countPlanned(ctx, r, workers, policy, plan.Result(), pred, handlers), nil
}

// countPlanned runs one Locomotive per segment of a validated plan and seals
// the total once all of them have returned.
func countPlanned(ctx context.Context, r segment.Range, workers int, policy segment.TailPolicy,
	segs []segment.Segment, pred primes.Predicate, handlers core.Handlers) tally.Outcome {

	if pred == nil {
		pred = primes.IsPrime
	}

	runID := uuid.New()
	acc := &core.Accumulator{}
	results := make([]tally.SegmentCount, len(segs))
	wg := &sync.WaitGroup{}

	start := time.Now()
	for _, seg := range segs {
		wg.Add(1)
		go core.Locomotive(ctx, seg, pred, acc, handlers, results, wg)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total, contributions := acc.Seal()
	if contributions != len(segs) {
		log.Panic("accumulator contributions do not match segments",
			zap.Stringer("runID", runID),
			zap.Int("contributions", contributions),
			zap.Int("segments", len(segs)))
	}

	uncovered, truncated := segment.Uncovered(r, segs)
	if truncated {
		log.Debug("tail excluded from every segment",
			zap.Stringer("runID", runID),
			zap.Stringer("uncovered", uncovered))
	}

	log.Debug("partitioned count finished",
		zap.Stringer("runID", runID),
		zap.Stringer("range", r),
		zap.Int("workers", workers),
		zap.Stringer("tail", policy),
		zap.Uint64("total", total),
		zap.Duration("elapsed", elapsed))

	return tally.Outcome{
		RunID:     runID,
		Range:     r,
		Workers:   workers,
		Tail:      policy,
		Segments:  results,
		Uncovered: uncovered,
		Total:     total,
		Elapsed:   elapsed,
	}
}

// Run is CountMatching delivered on a channel. Worker count and tail policy
// come from ctx. The channel yields exactly one Result and is then closed;
// configuration errors are delivered without starting any worker.
func Run(ctx context.Context, r segment.Range, pred primes.Predicate,
	handlers core.Handlers) <-chan tally.Result[tally.Outcome] {

	workers := core.GetWorkerCount(ctx, core.Parallelism())
	policy := core.GetTailPolicy(ctx, defaultTailPolicy)
	plan := solo.Validate(ctx, r, workers, policy)
	if !plan.IsSuccess() {
		return core.Deliver(tally.Fail[tally.Outcome](plan.Err()))
	}
	segs := plan.Result()

	out := make(chan tally.Result[tally.Outcome], 1)

	go func() {
		defer close(out)
		out <- tally.Success(countPlanned(ctx, r, workers, policy, segs, pred, handlers))
	}()

	return out
}
