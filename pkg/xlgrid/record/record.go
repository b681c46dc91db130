// Package record abstracts one row of data away from its storage shape.
//
// The materializer and the row stream depend only on the Record capability;
// maps, value slices and structs are adapted to it here.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Record is one logical row: an ordered set of named scalar values.
type Record interface {
	// Fields returns the field names in column order.
	Fields() []string
	// Get returns the value of field and whether the record has it.
	Get(field string) (any, bool)
}

// Row is the ordered Record produced by the row stream.
type Row struct {
	names  []string
	values []any
	index  map[string]int
}

// NewRow pairs names with values. Missing trailing values decode as "".
// The returned Row is immutable and safe for concurrent reads.
func NewRow(names []string, values []any) *Row {
	vals := make([]any, len(names))
	index := make(map[string]int, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		if i < len(values) {
			vals[i] = values[i]
		} else {
			vals[i] = ""
		}
		index[names[i]] = i
	}
	return &Row{names: names, values: vals, index: index}
}

// Fields implements Record.
func (r *Row) Fields() []string { return r.names }

// Values returns the values in column order.
func (r *Row) Values() []any { return r.values }

// Len returns the number of fields.
func (r *Row) Len() int { return len(r.names) }

// Get implements Record. When a name repeats, the leftmost column wins.
func (r *Row) Get(field string) (any, bool) {
	i, ok := r.index[field]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Map copies the record into a map.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, len(r.names))
	for i := len(r.names) - 1; i >= 0; i-- {
		m[r.names[i]] = r.values[i]
	}
	return m
}

// MarshalJSON encodes the row as an object, keeping column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// mapRecord adapts a map with an explicit field order.
type mapRecord struct {
	order []string
	data  map[string]any
}

// FromMap adapts m. The field order is taken from order when given,
// otherwise the keys are sorted.
func FromMap(m map[string]any, order ...string) Record {
	if len(order) == 0 {
		order = make([]string, 0, len(m))
		for k := range m {
			order = append(order, k)
		}
		sort.Strings(order)
	}
	return mapRecord{order: order, data: m}
}

func (m mapRecord) Fields() []string { return m.order }

func (m mapRecord) Get(field string) (any, bool) {
	v, ok := m.data[field]
	return v, ok
}

// FromValues adapts a positional value list. Field names are the column
// indexes "0", "1", ... unless names are given.
func FromValues(values []any, names ...string) Record {
	if len(names) == 0 {
		names = make([]string, len(values))
		for i := range values {
			names[i] = fmt.Sprint(i)
		}
	}
	return NewRow(names, values)
}
