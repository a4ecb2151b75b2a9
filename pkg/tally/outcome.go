package tally

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/segcount/pkg/segment"
)

// SegmentCount is what one worker produced for its segment.
type SegmentCount struct {
	ID      uuid.UUID       `json:"id"`
	Segment segment.Segment `json:"segment"`
	Count   uint64          `json:"count"`
	Elapsed time.Duration   `json:"elapsed"`
}

// Outcome is a finished partitioned count.
type Outcome struct {
	RunID    uuid.UUID          `json:"run_id"`
	Range    segment.Range      `json:"range"`
	Workers  int                `json:"workers"`
	Tail     segment.TailPolicy `json:"tail"`
	Segments []SegmentCount     `json:"segments"`
	// Uncovered is the tail no segment scanned; empty unless Tail is
	// segment.TailTruncate and the range length is not a multiple of Workers.
	Uncovered segment.Range `json:"uncovered"`
	Total     uint64        `json:"total"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Covered is the prefix of Range the segments scanned.
func (o Outcome) Covered() segment.Range {
	if o.Uncovered.IsEmpty() {
		return o.Range
	}
	return segment.Range{Start: o.Range.Start, End: o.Uncovered.Start}
}

// Sink consumes finished outcomes, e.g. by printing them.
type Sink interface {
	Report(ctx context.Context, o Outcome) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, o Outcome) error

func (f SinkFunc) Report(ctx context.Context, o Outcome) error {
	return f(ctx, o)
}
