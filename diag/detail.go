package diag

// Detail is a key-value pair of structured context attached to an Issue.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys, kept consistent across call sites.
const (
	DetailKeyField    = "field"
	DetailKeyKind     = "kind" // constraint.Kind token
	DetailKeyExpected = "expected"
	DetailKeyGot      = "got"
	DetailKeyCount    = "count"
)

func compareDetails(a, b []Detail) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i].Key != b[i].Key {
			if a[i].Key < b[i].Key {
				return -1
			}
			return 1
		}
		if a[i].Value != b[i].Value {
			if a[i].Value < b[i].Value {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}
