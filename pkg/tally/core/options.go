package core

import (
	"context"
	"runtime"

	"github.com/ib-77/segcount/pkg/segment"
)

type OptionKey string

const (
	TailOptionKey   OptionKey = "tail_options"
	WorkerOptionKey OptionKey = "worker_options"
)

type WorkerOptions struct {
	Count int
}

type TailOptions struct {
	Policy segment.TailPolicy
}

func WithTailOptions(ctx context.Context, policy segment.TailPolicy) context.Context {
	return context.WithValue(ctx, TailOptionKey, TailOptions{Policy: policy})
}

func WithWorkerOptions(ctx context.Context, workers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{Count: workers})
}

// GetWorkerCount returns the worker count stored in ctx, or defaultWorkers.
// The stored value is returned as is; validation happens at planning time.
func GetWorkerCount(ctx context.Context, defaultWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.Count
	}
	return defaultWorkers
}

func GetTailPolicy(ctx context.Context, defaultPolicy segment.TailPolicy) segment.TailPolicy {
	options, ok := ctx.Value(TailOptionKey).(TailOptions)
	if ok {
		return options.Policy
	}
	return defaultPolicy
}

// Parallelism is the number of goroutines that can run simultaneously:
// the smaller of GOMAXPROCS and the CPU count, never below 1.
func Parallelism() int {
	maxProcs := runtime.GOMAXPROCS(0)
	numCPU := runtime.NumCPU()
	n := maxProcs
	if numCPU < n {
		n = numCPU
	}
	if n < 1 {
		return 1
	}
	return n
}
