// Package constraints provides test-driven data analysis for Go
// applications: discovering per-field constraints from a dataset,
// verifying a dataset against a saved constraint document, and detecting
// which rows of a new dataset violate it.
//
// A constraint document records, per field, the shape a dataset was
// observed to have (type, bounds, nullability, allowed values, string
// patterns) plus optional cross-field comparisons. Discover builds one
// from a dataset; Verify checks a dataset still satisfies one in
// aggregate; Detect flags which individual rows don't.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no dependencies outside this tier):
//	  - field: Typed scalar values and classification
//	  - diag: Structured diagnostics with stable error codes
//	  - stats: Per-field statistics providers
//
//	Core library tier:
//	  - constraint: Constraint kinds and per-field bundles
//	  - multifield: Cross-field comparison constraints
//	  - discover: Constraint discovery from observed statistics
//	  - verify: Aggregate verification against a constraint document
//	  - detect: Row-level anomaly detection against a constraint document
//
//	Adapter tier:
//	  - docjson: JSON (de)serialisation of constraint documents
//	  - adapter/memory: In-memory dataset adapter
//	  - adapter/csv: CSV dataset adapter
//
//	Ambient tier:
//	  - log: Nil-safe logging facade
//	  - config: Functional-option policy builders
//
// # Entry Points
//
// Discovery:
//
//	import "github.com/tdda-go/constraints/discover"
//
//	bundles, err := discover.Discover(ctx, provider, config.NewDiscoverPolicy())
//	if err != nil {
//	    // I/O or internal error
//	}
//	doc := docjson.New(bundles...)
//
// Verification:
//
//	import "github.com/tdda-go/constraints/verify"
//
//	report, err := verify.Verify(ctx, doc.Fields, provider, doc.MultiField, rows, config.NewVerifyPolicy())
//	if err != nil {
//	    // I/O or internal error
//	}
//	if !report.Passed() {
//	    // report.Failures() / report.MultiField carry the violations
//	}
//
// Detection:
//
//	import "github.com/tdda-go/constraints/detect"
//
//	result, err := detect.Detect(ctx, provider, rows, doc.Fields, doc.MultiField, config.NewDetectPolicy())
//	if err != nil {
//	    // I/O or internal error
//	}
//	for _, row := range result.Rows {
//	    // row.NFailures, row.Values, row.PerConstraint
//	}
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/tdda-go/constraints/diag]: Structured diagnostics
//   - [github.com/tdda-go/constraints/field]: Typed scalar values
//   - [github.com/tdda-go/constraints/stats]: Field-statistics providers
//   - [github.com/tdda-go/constraints/constraint]: Constraint kinds and bundles
//   - [github.com/tdda-go/constraints/multifield]: Cross-field constraints
//   - [github.com/tdda-go/constraints/discover]: Constraint discovery
//   - [github.com/tdda-go/constraints/verify]: Aggregate verification
//   - [github.com/tdda-go/constraints/detect]: Row-level detection
//   - [github.com/tdda-go/constraints/docjson]: Constraint document JSON codec
//   - [github.com/tdda-go/constraints/adapter/memory]: In-memory dataset adapter
//   - [github.com/tdda-go/constraints/adapter/csv]: CSV dataset adapter
//   - [github.com/tdda-go/constraints/config]: Policy builders
//   - [github.com/tdda-go/constraints/log]: Logging facade
package constraints
