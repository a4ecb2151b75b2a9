package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ib-77/segcount/pkg/tally"
)

type textSink struct {
	w io.Writer
}

func newTextSink(w io.Writer) *textSink {
	return &textSink{w: w}
}

func (s *textSink) Report(_ context.Context, o tally.Outcome) error {
	if _, err := fmt.Fprintf(s.w, "Number of primes up to %d: %d\n", o.Range.End, o.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "Time taken: %s\n", formatElapsed(o.Elapsed)); err != nil {
		return err
	}
	if !o.Uncovered.IsEmpty() {
		if _, err := fmt.Fprintf(s.w, "Not scanned (tail of %d workers): %s\n", o.Workers, o.Uncovered); err != nil {
			return err
		}
	}
	return nil
}

func formatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}
