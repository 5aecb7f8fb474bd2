package data

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
)

// TableDataFactory is a static factory that answers queries with
// pre-registered tables. The query name is the table name.
type TableDataFactory struct {
	tables map[string]TableModel
	closed atomic.Bool
}

// NewTableDataFactory creates an empty table factory.
func NewTableDataFactory() *TableDataFactory {
	return &TableDataFactory{tables: make(map[string]TableModel)}
}

// AddTable registers a table under the given query name.
func (f *TableDataFactory) AddTable(name string, table TableModel) error {
	if name == "" {
		return errors.New("table name must not be empty")
	}
	if table == nil {
		return errors.New("table must not be nil")
	}
	f.tables[name] = table
	return nil
}

// RemoveTable unregisters the named table.
func (f *TableDataFactory) RemoveTable(name string) {
	delete(f.tables, name)
}

// Table returns the table registered under name.
func (f *TableDataFactory) Table(name string) (TableModel, bool) {
	t, ok := f.tables[name]
	return t, ok
}

// QueryData returns the named table, truncated to the reserved query limit.
func (f *TableDataFactory) QueryData(ctx context.Context, query string, params DataRow) (TableModel, error) {
	if f.closed.Load() {
		return nil, NewReportDataFactoryError(query, "factory is closed", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewReportDataFactoryError(query, "query cancelled", err)
	}
	table, ok := f.tables[query]
	if !ok {
		return nil, NewQueryNotFoundError(query)
	}
	if limit, ok := QueryLimit(params); ok {
		return LimitRows(table, limit), nil
	}
	return table, nil
}

func (f *TableDataFactory) IsQueryExecutable(query string, _ DataRow) bool {
	_, ok := f.tables[query]
	return ok
}

// QueryNames returns the sorted table names.
func (f *TableDataFactory) QueryNames() []string {
	names := make([]string, 0, len(f.tables))
	for n := range f.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f *TableDataFactory) MetaData() MetaData {
	return MetaData{Name: "table"}
}

// Derive copies the table registry. Tables are treated as immutable and
// shared between the copies.
func (f *TableDataFactory) Derive() DataFactory {
	derived := NewTableDataFactory()
	for n, t := range f.tables {
		derived.tables[n] = t
	}
	return derived
}

func (f *TableDataFactory) Initialize(context.Context, InitContext) error {
	f.closed.Store(false)
	return nil
}

func (f *TableDataFactory) CancelRunningQuery() {}

func (f *TableDataFactory) Close() error {
	f.closed.Store(true)
	return nil
}

// ReferencedFields returns the reserved parameters; table queries read no other fields.
func (f *TableDataFactory) ReferencedFields(string, DataRow) ([]string, error) {
	return []string{QueryLimitParameter}, nil
}

// QueryHash identifies a table query by its name.
func (f *TableDataFactory) QueryHash(query string, _ DataRow) (string, error) {
	return "table:" + query, nil
}
