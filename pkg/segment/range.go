package segment

import (
	"fmt"

	cerrors "github.com/ib-77/segcount/pkg/errors"
)

// Range is the half-open interval [Start, End).
type Range struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// UpTo returns [0, end).
func UpTo(end uint64) Range {
	return Range{Start: 0, End: end}
}

func (r Range) Validate() error {
	if r.Start >= r.End {
		return cerrors.ErrInvalidRange.GenWithStackByArgs(r.Start, r.End)
	}
	return nil
}

func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.Len() == 0
}

func (r Range) Contains(n uint64) bool {
	return n >= r.Start && n < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Segment is the part of a Range assigned to exactly one worker.
type Segment struct {
	Index int `json:"index"`
	Range
}

func (s Segment) String() string {
	return fmt.Sprintf("#%d%s", s.Index, s.Range)
}
