package log

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Op represents a running top-level operation (a Discover, Verify, or
// Detect call) with automatic start/end logging and duration measurement.
//
// Create via [Begin]. It is safe to call methods on a nil *Op, so callers
// can unconditionally defer op.End(...) regardless of whether logging
// turned out to be enabled.
type Op struct {
	ctx       context.Context
	logger    *slog.Logger
	name      string
	startTime time.Time
	ended     atomic.Bool
}

// Begin starts a new operation and logs its start at Debug level.
//
// Returns nil when logging is disabled (logger is nil or Debug is not
// enabled), so the common case costs one nil check and no allocation.
//
// Operation names follow tdda.<package>.<operation>, e.g.
// "tdda.discover.run", "tdda.verify.run", "tdda.detect.run".
func Begin(ctx context.Context, logger *slog.Logger, name string, attrs ...slog.Attr) *Op {
	if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	op := &Op{ctx: ctx, logger: logger, name: name, startTime: time.Now()}

	logAttrs := make([]slog.Attr, 0, len(attrs)+1)
	logAttrs = append(logAttrs, slog.String("op", name))
	logAttrs = append(logAttrs, attrs...)
	logger.LogAttrs(ctx, slog.LevelDebug, "operation started", logAttrs...)
	return op
}

// End logs operation completion. Safe to call on a nil *Op, and safe to
// call more than once (only the first call logs).
func (o *Op) End(err error, attrs ...slog.Attr) {
	if o == nil || o.ended.Swap(true) {
		return
	}
	if o.logger == nil || !o.logger.Enabled(o.ctx, slog.LevelDebug) {
		return
	}

	elapsed := time.Since(o.startTime)
	logAttrs := make([]slog.Attr, 0, len(attrs)+4)
	logAttrs = append(logAttrs,
		slog.String("op", o.name),
		slog.Int64("elapsed_ms", elapsed.Milliseconds()),
		slog.Duration("duration", elapsed),
	)
	if ctxErr := o.ctx.Err(); ctxErr != nil {
		logAttrs = append(logAttrs, slog.String("ctx_err", ctxErr.Error()))
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}
	logAttrs = append(logAttrs, attrs...)

	o.logger.LogAttrs(o.ctx, slog.LevelDebug, "operation ended", logAttrs...)
}
