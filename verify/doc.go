// Package verify evaluates a constraint document against a dataset's
// statistics, producing a structured report of per-(field, constraint)
// outcomes (spec §4.4, §6.3). Evaluation is per-column aggregate, in
// contrast to package detect's per-row evaluation.
package verify
