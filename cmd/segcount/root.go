package main

import (
	"context"

	"github.com/ib-77/segcount/pkg/config"
	cerrors "github.com/ib-77/segcount/pkg/errors"
	"github.com/ib-77/segcount/pkg/logutil"
	"github.com/ib-77/segcount/pkg/metrics"
	"github.com/ib-77/segcount/pkg/primes"
	"github.com/ib-77/segcount/pkg/tally"
	"github.com/ib-77/segcount/pkg/tally/core"
	"github.com/ib-77/segcount/pkg/tally/lite"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath  string
	limit       uint64
	workers     int
	tail        string
	verify      bool
	logLevel    string
	logFormat   string
	logFile     string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "segcount",
		Short: "Count primes below a limit on all cores",
		Long: `segcount splits [0, limit) into one fixed-width segment per worker,
counts the primes in every segment in parallel and prints the total together
with the wall-clock time of the run.

When limit is not a multiple of the worker count the remainder is left out
unless --tail extend is given.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			restore, err := logutil.InitLogger(cfg.Log, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = log.Sync()
				restore()
			}()

			return run(cmd.Context(), cfg, opts.metricsFile, newTextSink(cmd.OutOrStdout()))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path of a .toml or .yaml config file")
	flags.Uint64VarP(&opts.limit, "limit", "n", config.DefaultLimit, "count primes in [0, limit)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "number of segments and goroutines, 0 for hardware parallelism")
	flags.StringVar(&opts.tail, "tail", "truncate", "remainder policy: truncate or extend")
	flags.BoolVar(&opts.verify, "verify", false, "cross-check the total against a sequential scan")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file")

	return cmd
}

// resolve layers the config file, the environment and explicitly set flags,
// in that order.
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Limit = o.limit
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("tail") {
		cfg.Tail = o.tail
	}
	if flags.Changed("verify") {
		cfg.Verify = o.verify
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, metricsFile string, sink tally.Sink) error {
	if ctx == nil {
		ctx = context.Background()
	}
	policy, err := cfg.TailPolicy()
	if err != nil {
		return err
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = core.Parallelism()
	}
	ctx = core.WithTailOptions(core.WithWorkerOptions(ctx, workers), policy)

	log.Info("counting primes",
		zap.Stringer("range", cfg.Range()),
		zap.Int("workers", workers),
		zap.Stringer("tail", policy),
		zap.Bool("verify", cfg.Verify))

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	var outcome tally.Outcome
	if cfg.Verify {
		var reference uint64
		outcome, reference, err = lite.Verify(ctx, cfg.Range(), workers, collector.Handlers())
		if err != nil {
			log.Error("verification failed", zap.Error(err))
			return err
		}
		log.Info("partitioned total matches sequential scan", zap.Uint64("reference", reference))
	} else {
		res := core.Await(lite.Run(ctx, cfg.Range(), primes.IsPrime, collector.Handlers()))
		if !res.IsSuccess() {
			log.Error("count failed", zap.Error(res.Err()))
			return res.Err()
		}
		outcome = res.Result()
	}
	collector.ObserveOutcome(outcome)

	log.Info("count finished",
		zap.Stringer("runID", outcome.RunID),
		zap.Uint64("total", outcome.Total),
		zap.Duration("elapsed", outcome.Elapsed))

	if err := sink.Report(ctx, outcome); err != nil {
		return cerrors.WrapError(cerrors.ErrSinkReport, err)
	}
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return errors.Annotatef(err, "write metrics to %s", metricsFile)
		}
	}
	return nil
}
