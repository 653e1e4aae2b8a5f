// Package diag provides structured, code-tagged diagnostic issues for
// document-level and per-constraint errors, used in place of bare error
// strings wherever a caller needs to match on a stable reason rather than
// parse free text.
//
// An Issue carries a Severity, a closed Code, a human message, and
// optional field/row provenance plus key-value Details. Issues are built
// with NewIssue/IssueBuilder — direct struct literal construction bypasses
// validity checks and panics when collected — and gathered into a Result
// via a Collector, which is safe for concurrent use by discover/verify
// field workers.
//
// Entry point pattern: err != nil means catastrophic failure (I/O, bad
// JSON); err == nil and !result.OK() means semantic failure reported as
// structured issues; err == nil and result.OK() means success, possibly
// with warnings.
package diag
