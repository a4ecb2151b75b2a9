// Package logutil installs the process-wide logger used through the
// github.com/pingcap/log globals.
package logutil

import (
	"os"

	"github.com/ib-77/segcount/pkg/config"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger replaces the global logger according to cfg. Log lines go to
// cfg.File when set, otherwise to output (stderr when nil), so that stdout is
// left to the command's own results. The returned function restores the
// previous logger.
func InitLogger(cfg config.LogConfig, output zapcore.WriteSyncer) (func(), error) {
	logCfg := &log.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		File: log.FileLogConfig{
			Filename: cfg.File,
		},
	}

	var (
		lg    *zap.Logger
		props *log.ZapProperties
		err   error
	)
	if cfg.File != "" {
		lg, props, err = log.InitLogger(logCfg)
	} else {
		if output == nil {
			output = zapcore.Lock(os.Stderr)
		}
		lg, props, err = log.InitLoggerWithWriteSyncer(logCfg, output, output)
	}
	if err != nil {
		return nil, errors.Annotate(err, "init logger failed")
	}
	return log.ReplaceGlobals(lg, props), nil
}
