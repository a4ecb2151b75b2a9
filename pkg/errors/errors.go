// Package errors defines the RFC-coded errors shared by the counting engine,
// its configuration layer and the command line front end.
package errors

import (
	stderrors "errors"

	"github.com/pingcap/errors"
)

// configuration errors, reported before any worker starts
var (
	ErrInvalidWorkerCount = errors.Normalize(
		"worker count must be at least 1, got %d",
		errors.RFCCodeText("SEG:ErrInvalidWorkerCount"),
	)
	ErrInvalidRange = errors.Normalize(
		"invalid range [%d, %d): start must be below end",
		errors.RFCCodeText("SEG:ErrInvalidRange"),
	)
	ErrUnknownTailPolicy = errors.Normalize(
		"unknown tail policy: %s",
		errors.RFCCodeText("SEG:ErrUnknownTailPolicy"),
	)
	ErrConfigDecode = errors.Normalize(
		"decode config file %s failed",
		errors.RFCCodeText("SEG:ErrConfigDecode"),
	)
	ErrConfigInvalid = errors.Normalize(
		"invalid config: %s",
		errors.RFCCodeText("SEG:ErrConfigInvalid"),
	)
)

// run errors
var (
	ErrCountMismatch = errors.Normalize(
		"partitioned count %d differs from reference count %d over [%d, %d)",
		errors.RFCCodeText("SEG:ErrCountMismatch"),
	)
	ErrSinkReport = errors.Normalize(
		"report outcome failed",
		errors.RFCCodeText("SEG:ErrSinkReport"),
	)
)

var configErrors = []*errors.Error{
	ErrInvalidWorkerCount,
	ErrInvalidRange,
	ErrUnknownTailPolicy,
	ErrConfigDecode,
	ErrConfigInvalid,
}

// WrapError wraps err with rfcError, formatting the message with args.
// It returns nil when err is nil.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}

// RFCCode returns the RFC code of the first normalized error in err's chain.
func RFCCode(err error) (errors.RFCErrorCode, bool) {
	if terr, ok := err.(*errors.Error); ok {
		return terr.RFCCode(), true
	}
	type causer interface {
		Cause() error
	}
	if cerr, ok := err.(causer); ok {
		if terr, ok := cerr.Cause().(*errors.Error); ok {
			return terr.RFCCode(), true
		}
	}
	if err = errors.Unwrap(err); err != nil {
		return RFCCode(err)
	}
	return "", false
}

// IsConfigError reports whether err was produced by validating a range,
// worker count, tail policy or configuration file.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range configErrors {
		if stderrors.Is(err, e) {
			return true
		}
	}
	return false
}
