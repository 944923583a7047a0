package row

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Row is one record of a knowledge base: an ordered column -> value mapping.
// Reading a column the row does not have yields "".
type Row struct {
	columns []string
	values  map[string]string
}

// New builds a Row from parallel column/value slices.
// Missing trailing values read as ""; a repeated column keeps its first value.
func New(columns, values []string) Row {
	r := Row{
		columns: make([]string, 0, len(columns)),
		values:  make(map[string]string, len(columns)),
	}
	for i, c := range columns {
		if _, dup := r.values[c]; dup {
			continue
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r.columns = append(r.columns, c)
		r.values[c] = v
	}
	return r
}

// Get returns the value of column, or "" if the row has no such column.
func (r Row) Get(column string) string { return r.values[column] }

// Has reports whether the row carries column.
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in source order.
func (r Row) Columns() []string { return r.columns }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Project returns a new Row with exactly the given columns, in that order.
// Columns absent from r are present in the projection with an empty value.
func (r Row) Project(columns []string) Row {
	values := make([]string, len(columns))
	for i, c := range columns {
		values[i] = r.Get(c)
	}
	return New(slices.Clone(columns), values)
}

// MarshalJSON encodes the row as a JSON object whose keys keep column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[c])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
