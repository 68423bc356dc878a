package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/errors"
)

// StatusMap maps engine status codes to error kinds for one call site.
type StatusMap map[codes.Code]errors.Kind

// global applies to every call. Call-site entries take precedence.
var global = StatusMap{
	codes.Unavailable: errors.KindDisconnected,
	codes.Internal:    errors.KindInternal,
}

// Common call-site maps.
var (
	// Lookup covers calls addressing one entity by id or name.
	Lookup = StatusMap{
		codes.NotFound:        errors.KindInvalidInstance,
		codes.InvalidArgument: errors.KindInvalidArgument,
	}

	// Indexed covers calls taking an element index.
	Indexed = StatusMap{
		codes.NotFound:        errors.KindInvalidInstance,
		codes.InvalidArgument: errors.KindInvalidArgument,
		codes.OutOfRange:      errors.KindOutOfRange,
	}

	// Equation covers equation writes, where the engine rejects
	// unparseable text with InvalidArgument.
	Equation = StatusMap{
		codes.NotFound:        errors.KindInvalidInstance,
		codes.InvalidArgument: errors.KindInvalidEquation,
		codes.OutOfRange:      errors.KindOutOfRange,
	}
)

// Merge returns a map holding the entries of m overlaid with extra.
func (m StatusMap) Merge(extra StatusMap) StatusMap {
	out := make(StatusMap, len(m)+len(extra))
	for c, k := range m {
		out[c] = k
	}
	for c, k := range extra {
		out[c] = k
	}
	return out
}

// Interpret converts an error returned by an engine call into a structured
// error. Codes found in extra or the global map take the mapped kind;
// anything else, including errors that carry no status, is unexpected and
// keeps the original code and message. Interpret returns nil for nil.
func Interpret(call string, extra StatusMap, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		e := errors.Engine(errors.KindUnexpected, call, codes.Unknown, err.Error())
		e.Cause = err
		return e
	}
	if st.Code() == codes.OK {
		return nil
	}

	kind, ok := extra[st.Code()]
	if !ok {
		kind, ok = global[st.Code()]
	}
	if !ok {
		kind = errors.KindUnexpected
	}
	e := errors.Engine(kind, call, st.Code(), st.Message())
	e.Cause = err
	return e
}

// Invoke runs one engine call and interprets its error. It never retries.
// The outcome is logged at debug level and recorded in the package metrics
// when they are configured.
func Invoke[T any](ctx context.Context, call string, extra StatusMap, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	elapsed := time.Since(start)

	err = Interpret(call, extra, err)
	code := codes.OK
	outcome := "ok"
	if err != nil {
		var zero T
		out = zero
		if e, ok := err.(*errors.Error); ok {
			code = e.Code
			outcome = string(e.Kind)
		}
	}

	currentMetrics().observe(call, outcome, elapsed)
	Logger().Debug("engine call",
		zap.String("call", call),
		zap.String("code", code.String()),
		zap.Duration("duration", elapsed),
		zap.Error(err))
	return out, err
}
