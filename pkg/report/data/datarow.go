package data

import (
	"reflect"
	"sort"
)

// DataRow is the read-only view of the current row of a report run.
type DataRow interface {
	// Get returns the value of the named column, or nil if the column is unknown.
	Get(column string) any
	// ColumnNames returns the names of all columns in this row.
	ColumnNames() []string
	// IsChanged reports whether the column value differs from the previous row.
	IsChanged(column string) bool
}

// StaticDataRow is a DataRow backed by a fixed set of values.
type StaticDataRow struct {
	names   []string
	values  map[string]any
	changed map[string]bool
}

// EmptyDataRow is a DataRow without columns.
var EmptyDataRow DataRow = NewStaticDataRow(nil)

// NewStaticDataRow creates a row from the given values. No column is marked as changed.
func NewStaticDataRow(values map[string]any) *StaticDataRow {
	row := &StaticDataRow{
		values:  make(map[string]any, len(values)),
		changed: make(map[string]bool),
	}
	for name, v := range values {
		row.names = append(row.names, name)
		row.values[name] = v
	}
	sort.Strings(row.names)
	return row
}

// Get returns the value of the named column.
func (r *StaticDataRow) Get(column string) any {
	return r.values[column]
}

// ColumnNames returns the sorted column names.
func (r *StaticDataRow) ColumnNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// IsChanged reports whether the column was marked as changed.
func (r *StaticDataRow) IsChanged(column string) bool {
	return r.changed[column]
}

// MarkChanged flags the given columns as changed and returns the row.
func (r *StaticDataRow) MarkChanged(columns ...string) *StaticDataRow {
	for _, c := range columns {
		r.changed[c] = true
	}
	return r
}

// Advance returns the row that follows r with the given values. A column is
// changed in the new row when its value differs from the value in r, or when
// it did not exist in r.
func (r *StaticDataRow) Advance(values map[string]any) *StaticDataRow {
	next := NewStaticDataRow(values)
	for name, v := range values {
		prev, ok := r.values[name]
		if !ok || !reflect.DeepEqual(prev, v) {
			next.changed[name] = true
		}
	}
	return next
}
