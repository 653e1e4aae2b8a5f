// Package log provides optional debug/progress logging helpers shared by
// discover, verify, and detect.
//
// This package is developer-observability only. It is distinct from
// [github.com/tdda-go/constraints/diag], which carries user-facing content
// issues (failed constraints, malformed documents) with stable codes, and
// from error returns, which signal system failures. Logging here reports
// progress ("discovering field X", "worker pool started") and warnings
// ("field present in document but absent from source") that help a caller
// watch a long-running run without affecting its result.
//
// # Design
//
//   - Near-zero cost when disabled: a nil *slog.Logger short-circuits every
//     call with a single nil check.
//   - Stdlib only: built on [log/slog].
//   - Injection, not globals: every Policy carries its own Logger field,
//     set explicitly by the caller. No package-level default logger.
//
// # Usage
//
//	op := log.Begin(ctx, policy.Logger, "tdda.discover.run", slog.Int("fields", len(fields)))
//	defer op.End(nil)
//	...
//	log.Warn(ctx, policy.Logger, "field missing from source", slog.String("field", name))
package log
