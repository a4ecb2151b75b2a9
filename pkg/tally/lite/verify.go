package lite

import (
	"context"

	cerrors "github.com/ib-77/segcount/pkg/errors"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/ib-77/segcount/pkg/tally/core"
	"github.com/ib-77/segcount/pkg/tally/solo"
	"github.com/pingcap/errors"
	"golang.org/x/sync/errgroup"
)

// Verify runs a partitioned prime count and a sequential scan of the covered
// prefix of r side by side and returns ErrCountMismatch if their totals
// differ. The returned Outcome is valid even on mismatch. handlers observe
// the partitioned count only.
func Verify(ctx context.Context, r segment.Range, workers int,
	handlers core.Handlers) (tally.Outcome, uint64, error) {

	policy := core.GetTailPolicy(ctx, defaultTailPolicy)
	segs, err := segment.Plan(r, workers, policy)
	if err != nil {
		return tally.Outcome{}, 0, err
	}
	covered := segment.Covered(r, segs)

	var (
		outcome   tally.Outcome
		reference uint64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		outcome = countPlanned(egCtx, r, workers, policy, segs, primes.IsPrime, handlers)
		return nil
	})
	eg.Go(func() error {
		if covered.IsEmpty() {
			return nil
		}
		res := solo.Reference(egCtx, covered, primes.IsPrime)
		reference = res.Result()
		return res.Err()
	})
	if err := eg.Wait(); err != nil {
		return tally.Outcome{}, 0, errors.Trace(err)
	}

	if outcome.Total != reference {
		return outcome, reference, cerrors.ErrCountMismatch.GenWithStackByArgs(
			outcome.Total, reference, covered.Start, covered.End)
	}
	return outcome, reference, nil
}
