package stats

import (
	"context"
	"fmt"

	"github.com/tdda-go/constraints/field"
)

// RowProvider is the minimal contract a dataset adapter must implement:
// field names plus a row cursor. FromRows turns this into a full Provider
// by scanning the dataset once, computing every reduction FromRows
// callers need without requiring the adapter to track them itself.
type RowProvider interface {
	FieldSource
	RowSource
}

type fieldStats struct {
	typ          field.Type
	haveType     bool
	min, max     field.Value
	haveExtrema  bool
	nullCount    int64
	nonNullCount int64
	distinct     []field.Value
	seen         map[string]struct{}
	minLen       int64
	maxLen       int64
	haveLen      bool
}

// Computed is a Provider built by scanning a RowProvider's rows exactly
// once. It is the streaming fallback described in spec §4.1 for adapters
// that cannot answer column reductions cheaply.
type Computed struct {
	fields []string
	stats  map[string]*fieldStats
	cap    int
}

// FromRows scans every row of src exactly once and returns a Provider
// computed from the observations. cap bounds the distinct-value tracking
// per field (spec's K); pass stats.DefaultDistinctCap if unsure.
//
// Cancellation is checked between rows (spec §5): a cancelled ctx aborts
// the scan and returns ctx.Err(), discarding partial results.
func FromRows(ctx context.Context, src RowProvider, cap int) (*Computed, error) {
	if cap <= 0 {
		cap = DefaultDistinctCap
	}

	fields := src.Fields()
	c := &Computed{
		fields: fields,
		stats:  make(map[string]*fieldStats, len(fields)),
		cap:    cap,
	}
	for _, f := range fields {
		c.stats[f] = &fieldStats{seen: make(map[string]struct{})}
	}

	it, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: opening row source: %w", err)
	}
	defer it.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, ok, err := it.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("stats: reading row: %w", err)
		}
		if !ok {
			break
		}
		for _, f := range fields {
			v := row[f]
			c.observe(f, v)
		}
	}
	return c, nil
}

func (c *Computed) observe(fieldName string, v field.Value) {
	s := c.stats[fieldName]

	if v.IsNull() {
		s.nullCount++
		return
	}
	s.nonNullCount++

	if !s.haveType {
		s.typ = v.Type()
		s.haveType = true
	}

	if !s.haveExtrema {
		s.min, s.max = v, v
		s.haveExtrema = true
	} else {
		if orderable(s.min, v) && field.Compare(v, s.min) < 0 {
			s.min = v
		}
		if orderable(s.max, v) && field.Compare(v, s.max) > 0 {
			s.max = v
		}
	}

	if n, ok := v.Len(); ok {
		if !s.haveLen {
			s.minLen, s.maxLen = int64(n), int64(n)
			s.haveLen = true
		} else {
			if int64(n) < s.minLen {
				s.minLen = int64(n)
			}
			if int64(n) > s.maxLen {
				s.maxLen = int64(n)
			}
		}
	}

	key := v.Key()
	if _, dup := s.seen[key]; !dup {
		s.seen[key] = struct{}{}
		if len(s.distinct) < c.cap {
			s.distinct = append(s.distinct, v)
		}
	}
}

func orderable(a, b field.Value) bool {
	if _, ok := a.Numeric(); ok {
		_, ok2 := b.Numeric()
		return ok2
	}
	return a.Type() == b.Type() && (a.Type() == field.Date || a.Type() == field.String)
}

func (c *Computed) Fields() []string { return append([]string(nil), c.fields...) }

func (c *Computed) LogicalType(fieldName string) (field.Type, bool) {
	s, ok := c.stats[fieldName]
	if !ok || !s.haveType {
		return field.Unknown, false
	}
	return s.typ, true
}

func (c *Computed) MinMax(fieldName string) (min, max field.Value, ok bool) {
	s, present := c.stats[fieldName]
	if !present || !s.haveExtrema {
		return field.Value{}, field.Value{}, false
	}
	return s.min, s.max, true
}

func (c *Computed) NullCounts(fieldName string) (nullCount, nonNullCount, total int64) {
	s, ok := c.stats[fieldName]
	if !ok {
		return 0, 0, 0
	}
	return s.nullCount, s.nonNullCount, s.nullCount + s.nonNullCount
}

func (c *Computed) DistinctValues(fieldName string, k int) (values []field.Value, truncated bool) {
	s, ok := c.stats[fieldName]
	if !ok {
		return nil, false
	}
	count, _ := c.DistinctCount(fieldName)
	if k <= 0 || k > len(s.distinct) {
		k = len(s.distinct)
	}
	return append([]field.Value(nil), s.distinct[:k]...), int64(k) < count
}

func (c *Computed) DistinctCount(fieldName string) (count int64, truncated bool) {
	s, ok := c.stats[fieldName]
	if !ok {
		return 0, false
	}
	return int64(len(s.seen)), len(s.distinct) < len(s.seen)
}

func (c *Computed) LengthRange(fieldName string) (min, max int64, ok bool) {
	s, present := c.stats[fieldName]
	if !present || !s.haveLen {
		return 0, 0, false
	}
	return s.minLen, s.maxLen, true
}

var _ Provider = (*Computed)(nil)
