// Package memory is the simplest reference adapter: a stats.RowProvider
// backed by an in-memory slice of rows, for datasets that are already
// loaded (tests, short-lived scripts, data assembled programmatically).
package memory

import (
	"context"

	"github.com/tdda-go/constraints/stats"
)

// Source is a stats.RowProvider over a fixed in-memory slice of rows.
// Field order is the order passed to New, independent of any one row's
// map key order.
//
// Thread Safety: Source is immutable after construction and safe for
// concurrent Rows calls; each call returns its own independent cursor.
type Source struct {
	fields []string
	rows   []stats.Row
}

// New builds a Source over rows, exposing fields in the given order.
// rows is not copied; callers should not mutate it after passing it in.
func New(fields []string, rows []stats.Row) *Source {
	return &Source{fields: fields, rows: rows}
}

func (s *Source) Fields() []string { return append([]string(nil), s.fields...) }

func (s *Source) Rows(ctx context.Context) (stats.RowIter, error) {
	return &cursor{rows: s.rows}, nil
}

type cursor struct {
	rows []stats.Row
	pos  int
}

func (c *cursor) Next(ctx context.Context) (stats.Row, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if c.pos >= len(c.rows) {
		return nil, false, nil
	}
	row := c.rows[c.pos]
	c.pos++
	return row, true, nil
}

func (c *cursor) Close() error { return nil }

var _ stats.RowProvider = (*Source)(nil)
