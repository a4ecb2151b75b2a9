package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
)

type Handlers struct {
	OnStart func(ctx context.Context, seg segment.Segment)
	OnDone  func(ctx context.Context, done tally.SegmentCount)
}

// Locomotive scans seg, writes its SegmentCount to results[seg.Index] and
// adds the count to acc. The scan touches no shared state; acc.Add is the
// only synchronized step. wg.Done is called on return.
func Locomotive(ctx context.Context, seg segment.Segment, pred primes.Predicate,
	acc *Accumulator, handlers Handlers, results []tally.SegmentCount, wg *sync.WaitGroup) {
	defer wg.Done()

	if handlers.OnStart != nil {
		handlers.OnStart(ctx, seg)
	}

	started := time.Now()
	local := primes.CountSequential(seg.Start, seg.End, pred)

	done := tally.SegmentCount{
		ID:      uuid.New(),
		Segment: seg,
		Count:   local,
		Elapsed: time.Since(started),
	}
	results[seg.Index] = done

	acc.Add(local)

	if handlers.OnDone != nil {
		handlers.OnDone(ctx, done)
	}
}
