// Package metrics exports partitioned count activity as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/ib-77/segcount/pkg/segment"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/ib-77/segcount/pkg/tally/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "segcount"

type Collector struct {
	segmentsStarted  prometheus.Counter
	segmentsFinished prometheus.Counter
	matched          prometheus.Counter
	segmentDuration  prometheus.Histogram
	runs             prometheus.Counter
	runDuration      prometheus.Histogram
	uncovered        prometheus.Counter
}

// NewCollector registers the collectors on reg. A nil reg leaves them
// unregistered, which is useful in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		segmentsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_started_total",
			Help:      "Segments handed to a worker",
		}),
		segmentsFinished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_finished_total",
			Help:      "Segments whose local count reached the accumulator",
		}),
		matched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matched_total",
			Help:      "Values satisfying the predicate, summed over all segments",
		}),
		segmentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "segment_duration_seconds",
			Help:      "Time one worker spent scanning its segment",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed partitioned counts",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time of a partitioned count",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		uncovered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uncovered_values_total",
			Help:      "Values left out by tail truncation",
		}),
	}
}

// Handlers feeds per-segment metrics; pass it to lite.CountMatching or
// lite.Run.
func (c *Collector) Handlers() core.Handlers {
	return core.Handlers{
		OnStart: func(_ context.Context, _ segment.Segment) {
			c.segmentsStarted.Inc()
		},
		OnDone: func(_ context.Context, done tally.SegmentCount) {
			c.segmentsFinished.Inc()
			c.matched.Add(float64(done.Count))
			c.segmentDuration.Observe(done.Elapsed.Seconds())
		},
	}
}

func (c *Collector) ObserveOutcome(o tally.Outcome) {
	c.runs.Inc()
	c.runDuration.Observe(o.Elapsed.Seconds())
	c.uncovered.Add(float64(o.Uncovered.Len()))
}
