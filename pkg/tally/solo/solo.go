package solo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
)

func Validate(_ context.Context, r segment.Range, workers int,
	policy segment.TailPolicy) tally.Result[[]segment.Segment] {

	segs, err := segment.Plan(r, workers, policy)
	if err != nil {
		return tally.Fail[[]segment.Segment](err)
	}
	return tally.Success(segs)
}

func Scan(_ context.Context, seg segment.Segment, pred primes.Predicate) tally.Result[tally.SegmentCount] {
	started := time.Now()
	count := primes.CountSequential(seg.Start, seg.End, pred)

	return tally.Success(tally.SegmentCount{
		ID:      uuid.New(),
		Segment: seg,
		Count:   count,
		Elapsed: time.Since(started),
	})
}

// Reference counts r on the calling goroutine.
func Reference(ctx context.Context, r segment.Range, pred primes.Predicate) tally.Result[uint64] {
	if err := r.Validate(); err != nil {
		return tally.Fail[uint64](err)
	}

	return tally.Then(Scan(ctx, segment.Segment{Range: r}, pred),
		func(sc tally.SegmentCount) tally.Result[uint64] {
			return tally.Success(sc.Count)
		})
}

func Finally[In, Out any](_ context.Context, input tally.Result[In],
	onSuccess func(r In) Out,
	onError func(err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(input.Result())
	}
	return onError(input.Err())
}
