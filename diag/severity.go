package diag

// Severity is an ordered enumeration where lower numeric values are more
// severe. Use the comparison methods rather than raw numeric comparisons.
type Severity uint8

const (
	// Fatal indicates an unrecoverable condition: malformed document,
	// impossible bounds. Processing halts.
	Fatal Severity = iota

	// Error indicates a validation failure where collection continues
	// (e.g. one failing constraint report among many).
	Error

	// Warning indicates a condition worth surfacing that doesn't fail the
	// overall result (e.g. a field present in the document but absent
	// from the dataset, under lenient schema matching).
	Warning

	// Info provides informational diagnostics that require no correction.
	Info
)

// String returns the canonical lowercase label: "fatal", "error",
// "warning", "info".
func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the severity indicates a failure (Fatal or Error).
func (s Severity) IsFailure() bool {
	return s <= Error
}
