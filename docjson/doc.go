// Package docjson (de)serialises constraint documents to and from the
// JSON wire format described in spec §6.1, preserving unknown top-level
// keys verbatim on re-save and preprocessing input with tidwall/jsonc so
// comments and trailing commas are tolerated the way the teacher's own
// JSON adapter does.
package docjson
