package segment

import (
	"strings"

	cerrors "github.com/ib-77/segcount/pkg/errors"
)

type TailPolicy int

const (
	// TailTruncate leaves [Start+w*workers, End) out of every segment.
	TailTruncate TailPolicy = iota
	// TailExtendLast stretches the last segment to End.
	TailExtendLast
)

func (p TailPolicy) String() string {
	switch p {
	case TailTruncate:
		return "truncate"
	case TailExtendLast:
		return "extend"
	default:
		return "unknown"
	}
}

func (p TailPolicy) Validate() error {
	if p != TailTruncate && p != TailExtendLast {
		return cerrors.ErrUnknownTailPolicy.GenWithStackByArgs(p.String())
	}
	return nil
}

// ParseTailPolicy accepts "truncate" and "extend" (or "extend-last"), case
// insensitive. An empty string selects TailTruncate.
func ParseTailPolicy(s string) (TailPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return TailTruncate, nil
	case "extend", "extend-last", "extend_last":
		return TailExtendLast, nil
	default:
		return TailTruncate, cerrors.ErrUnknownTailPolicy.GenWithStackByArgs(s)
	}
}

// Width is the floor-divided segment width for r split across workers.
func Width(r Range, workers int) uint64 {
	if workers < 1 {
		return 0
	}
	return r.Len() / uint64(workers)
}

// Plan splits r into workers segments ordered by start. Segment i spans
// [Start+w*i, Start+w*(i+1)) where w = Width(r, workers). When workers
// exceeds the range length w is zero and every segment is empty.
func Plan(r Range, workers int, policy TailPolicy) ([]Segment, error) {
	if workers < 1 {
		return nil, cerrors.ErrInvalidWorkerCount.GenWithStackByArgs(workers)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	w := Width(r, workers)
	segments := make([]Segment, workers)
	for i := range workers {
		start := r.Start + w*uint64(i)
		segments[i] = Segment{
			Index: i,
			Range: Range{Start: start, End: start + w},
		}
	}

	if policy == TailExtendLast {
		segments[workers-1].End = r.End
	}
	return segments, nil
}

// Uncovered returns the tail of r that no segment covers. The second result
// is false when segs reach r.End.
func Uncovered(r Range, segs []Segment) (Range, bool) {
	covered := r.Start
	if n := len(segs); n > 0 {
		covered = segs[n-1].End
	}
	if covered >= r.End {
		return Range{Start: r.End, End: r.End}, false
	}
	return Range{Start: covered, End: r.End}, true
}

// Covered returns the prefix of r spanned by segs.
func Covered(r Range, segs []Segment) Range {
	if len(segs) == 0 {
		return Range{Start: r.Start, End: r.Start}
	}
	return Range{Start: segs[0].Start, End: segs[len(segs)-1].End}
}
