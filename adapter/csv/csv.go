// Package csv is a reference stats.RowProvider over encoding/csv: the
// header row supplies field names, and every cell is classified via
// field.Classify, optionally guided by a per-field type hint so that an
// all-string CSV column still yields Int/Real/Bool/Date values.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/stats"
)

// Adapter parses CSV data into a stats.RowProvider.
//
// Thread Safety: Adapter holds no mutable state after construction; each
// Load call parses its own reader independently.
type Adapter struct {
	hints      map[string]field.Type
	comma      rune
	trimSpace  bool
	nullTokens map[string]struct{}
}

// Option configures Adapter behavior.
type Option func(*Adapter)

// New creates a CSV adapter with the given options.
func New(opts ...Option) *Adapter {
	a := &Adapter{comma: ','}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithTypeHints declares each field's logical type ahead of parsing, so
// that e.g. a column of date strings classifies as field.Date instead of
// field.String. Fields absent from hints classify by sniffing (spec's
// Unknown-hint fallback in field.Classify).
func WithTypeHints(hints map[string]field.Type) Option {
	return func(a *Adapter) { a.hints = hints }
}

// WithComma sets the field delimiter. Default ','.
func WithComma(r rune) Option {
	return func(a *Adapter) { a.comma = r }
}

// WithTrimLeadingSpace trims leading whitespace from each field, mirroring
// encoding/csv.Reader.TrimLeadingSpace.
func WithTrimLeadingSpace(trim bool) Option {
	return func(a *Adapter) { a.trimSpace = trim }
}

// WithNullTokens declares additional cell values (besides "", which is
// null unless the column's type hint is String) that classify as null,
// e.g. "NA" or "NULL".
func WithNullTokens(tokens ...string) Option {
	return func(a *Adapter) {
		a.nullTokens = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			a.nullTokens[t] = struct{}{}
		}
	}
}

// Load reads every record from r, using the first record as field names,
// and returns a stats.RowProvider over the rest.
func (a *Adapter) Load(r io.Reader) (stats.RowProvider, error) {
	cr := csv.NewReader(r)
	cr.Comma = a.comma
	cr.TrimLeadingSpace = a.trimSpace
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return &Source{}, nil
		}
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}

	var rows []stats.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: reading record: %w", err)
		}
		rows = append(rows, a.classifyRecord(header, record))
	}
	return &Source{fields: header, rows: rows}, nil
}

func (a *Adapter) classifyRecord(header, record []string) stats.Row {
	row := make(stats.Row, len(header))
	for i, name := range header {
		if i >= len(record) {
			row[name] = field.Null
			continue
		}
		cell := record[i]
		if _, isNull := a.nullTokens[cell]; isNull {
			row[name] = field.Null
			continue
		}
		hint := field.Unknown
		if a.hints != nil {
			if h, ok := a.hints[name]; ok {
				hint = h
			}
		}
		v, ok := field.Classify(cell, hint)
		if !ok {
			v = field.NewString(cell)
		}
		row[name] = v
	}
	return row
}

// Source is the stats.RowProvider Load returns: every record parsed
// eagerly into memory, since CSV files in this module's scope are small
// enough to load whole (spec's adapters are illustrative reference
// implementations, not a streaming-at-scale CSV engine).
type Source struct {
	fields []string
	rows   []stats.Row
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
