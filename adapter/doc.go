// Package adapter groups the reference dataset adapters. Each subpackage
// turns one data format into a stats.RowProvider (field names plus a row
// cursor), which stats.FromRows reduces into a stats.Provider.
//
// # Architectural Boundary
//
// Adapters live at the outermost tier of the module. This design provides:
//
//   - Clear library/consumer boundary: an adapter imports the library to
//     use it, mirroring how downstream consumers structure their own
//     adapters.
//
//   - Extensibility signal: users see adapter/memory and adapter/csv and
//     understand they can create adapter/myformat using the same pattern.
//
// # Dependency Direction
//
// Adapters depend on library packages; library packages never depend on adapters:
//
//	adapter/memory  ──imports──▶  stats
//	adapter/csv     ──imports──▶  stats, field
//
// # Layering Discipline
//
// The adapter package does not import internal/* packages. This maintains a
// clean separation between core library internals and the adapter layer.
//
// # Subpackages
//
//   - memory: rows already held in memory
//   - csv: CSV input read with encoding/csv, with optional type hints and
//     null tokens
package adapter
