package multifield

import (
	"context"

	"github.com/tdda-go/constraints/stats"
)

// Discoverer is the pluggable multi-field discovery hook: inferring which
// Lt/Lte/Eq/Gt/Gte relationships hold between a dataset's fields is
// delegated to implementations outside this module (e.g. a domain-specific
// discoverer that knows "start_date" precedes "end_date"); the core ships
// no default beyond NopDiscoverer.
type Discoverer interface {
	Discover(ctx context.Context, src stats.Provider, rows stats.RowSource) ([]Constraint, error)
}

// NopDiscoverer is the zero-value Discoverer: it never proposes any
// cross-field constraint.
type NopDiscoverer struct{}

func (NopDiscoverer) Discover(ctx context.Context, src stats.Provider, rows stats.RowSource) ([]Constraint, error) {
	return nil, nil
}
