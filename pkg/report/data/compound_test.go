package data

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqlFactory is a free-form factory that claims every query starting with "SELECT"
// plus any name listed in claims.
type sqlFactory struct {
	claims    map[string]bool
	queried   []string
	cancelled int
	closed    bool
	initErr   error
	closeErr  error
}

func newSQLFactory(claims ...string) *sqlFactory {
	f := &sqlFactory{claims: make(map[string]bool)}
	for _, c := range claims {
		f.claims[c] = true
	}
	return f
}

func (f *sqlFactory) QueryData(_ context.Context, query string, _ DataRow) (TableModel, error) {
	f.queried = append(f.queried, query)
	return NewTableModel([]string{"source"}, []any{"sql"}), nil
}

func (f *sqlFactory) IsQueryExecutable(query string, _ DataRow) bool {
	return f.claims[query] || strings.HasPrefix(query, "SELECT")
}

func (f *sqlFactory) QueryNames() []string { return nil }
func (f *sqlFactory) MetaData() MetaData   { return MetaData{Name: "sql", FreeFormQuery: true} }
func (f *sqlFactory) Derive() DataFactory {
	d := newSQLFactory()
	for c := range f.claims {
		d.claims[c] = true
	}
	return d
}
func (f *sqlFactory) Initialize(context.Context, InitContext) error { return f.initErr }
func (f *sqlFactory) CancelRunningQuery()                           { f.cancelled++ }
func (f *sqlFactory) Close() error {
	f.closed = true
	return f.closeErr
}

func tableFactory(t *testing.T, names ...string) *TableDataFactory {
	t.Helper()
	f := NewTableDataFactory()
	for _, n := range names {
		require.NoError(t, f.AddTable(n, NewTableModel([]string{"source"}, []any{"table:" + n})))
	}
	return f
}

func TestCompoundDataFactory_StaticBeforeFreeForm(t *testing.T) {
	sql := newSQLFactory("A", "B")
	static := tableFactory(t, "A")
	// Free-form registered first: the static factory must still win for "A".
	c := NewCompoundDataFactory(sql, static)

	result, err := c.QueryData(context.Background(), "A", EmptyDataRow)
	require.NoError(t, err)
	assert.Equal(t, "table:A", result.ValueAt(0, 0))
	assert.Empty(t, sql.queried)

	assert.Same(t, static, c.DataFactoryForQuery("A", false))
	assert.Same(t, sql, c.DataFactoryForQuery("A", true))
}

func TestCompoundDataFactory_FreeFormOnlyQuery(t *testing.T) {
	sql := newSQLFactory("B")
	static := tableFactory(t, "A")
	c := NewCompoundDataFactory(static, sql)

	assert.True(t, c.IsQueryExecutable("B", EmptyDataRow))
	assert.Nil(t, c.DataFactoryForQuery("B", false))
	assert.Same(t, sql, c.DataFactoryForQuery("B", true))

	result, err := c.QueryData(context.Background(), "B", nil)
	require.NoError(t, err)
	assert.Equal(t, "sql", result.ValueAt(0, 0))
	assert.Equal(t, []string{"B"}, sql.queried)
}

func TestCompoundDataFactory_FirstRegisteredWinsWithinClass(t *testing.T) {
	first := tableFactory(t, "A")
	second := tableFactory(t, "A")
	c := NewCompoundDataFactory(first, second)
	assert.Same(t, first, c.DataFactoryForQuery("A", false))

	ff1 := newSQLFactory("X")
	ff2 := newSQLFactory("X")
	c = NewCompoundDataFactory(ff1, ff2)
	assert.Same(t, ff1, c.DataFactoryForQuery("X", true))
}

func TestCompoundDataFactory_QueryNotFound(t *testing.T) {
	c := NewCompoundDataFactory(tableFactory(t, "A"))
	_, err := c.QueryData(context.Background(), "missing", EmptyDataRow)
	require.Error(t, err)
	assert.True(t, IsQueryNotFound(err))
	assert.True(t, IsReportDataFactoryError(err))
	assert.False(t, c.IsQueryExecutable("missing", EmptyDataRow))
}

func TestCompoundDataFactory_ListOperations(t *testing.T) {
	a := tableFactory(t, "A")
	b := tableFactory(t, "B")
	sql := newSQLFactory()
	c := NewCompoundDataFactory(nil, a)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Add(b))
	require.NoError(t, c.Insert(0, sql))
	assert.Error(t, c.Insert(5, sql))
	assert.Error(t, c.Add(nil))
	assert.Same(t, sql, c.At(0))
	assert.Nil(t, c.At(7))

	assert.Equal(t, []string{"A", "B"}, c.QueryNames())

	require.NoError(t, c.Set(1, b))
	assert.Equal(t, []string{"B"}, c.QueryNames())
	assert.True(t, c.Remove(sql))
	assert.False(t, c.Remove(sql))
	require.NoError(t, c.RemoveAt(0))
	assert.Error(t, c.RemoveAt(3))
	assert.Equal(t, 1, c.Len())
	for i, f := range c.factories[:cap(c.factories)][c.Len():] {
		assert.Nil(t, f, "removed slot %d still references a factory", i)
	}
}

func TestCompoundDataFactory_DeriveIsIndependent(t *testing.T) {
	static := tableFactory(t, "A")
	c := NewCompoundDataFactory(static)

	derived := c.Derive().(*CompoundDataFactory)
	require.Equal(t, 1, derived.Len())
	assert.NotSame(t, static, derived.At(0))

	derived.At(0).(*TableDataFactory).RemoveTable("A")
	assert.True(t, c.IsQueryExecutable("A", EmptyDataRow))
	assert.False(t, derived.IsQueryExecutable("A", EmptyDataRow))
}

func TestNormalize_FlattensNestedCompounds(t *testing.T) {
	sql := newSQLFactory("A")
	inner := NewCompoundDataFactory(sql)
	static := tableFactory(t, "A")
	outer := NewCompoundDataFactory(inner, static)

	// Without normalization the nested compound counts as a static factory
	// and answers "A" through its free-form child.
	assert.Same(t, inner, outer.DataFactoryForQuery("A", false))

	flat := Normalize(outer)
	assert.Equal(t, 2, flat.Len())
	assert.Same(t, static, flat.DataFactoryForQuery("A", false))
	assert.Equal(t, 0, Normalize(nil).Len())
}

func TestCompoundDataFactory_Lifecycle(t *testing.T) {
	ok := newSQLFactory()
	failing := newSQLFactory()
	failing.initErr = errors.New("connection refused")
	failing.closeErr = errors.New("close failed")

	c := NewCompoundDataFactory(ok, failing)
	err := c.Initialize(context.Background(), InitContext{Locale: "en_US"})
	assert.ErrorContains(t, err, "connection refused")

	c.CancelRunningQuery()
	assert.Equal(t, 1, ok.cancelled)
	assert.Equal(t, 1, failing.cancelled)

	err = c.Close()
	assert.ErrorContains(t, err, "close failed")
	assert.True(t, ok.closed)
	assert.True(t, failing.closed)
}

func TestCompoundDataFactory_Introspection(t *testing.T) {
	c := NewCompoundDataFactory(tableFactory(t, "A"), newSQLFactory())

	fields, err := c.ReferencedFields("A", EmptyDataRow)
	require.NoError(t, err)
	assert.Equal(t, []string{QueryLimitParameter}, fields)

	hash, err := c.QueryHash("A", EmptyDataRow)
	require.NoError(t, err)
	assert.Equal(t, "table:A", hash)

	fields, err = c.ReferencedFields("SELECT 1", EmptyDataRow)
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = c.QueryHash("nothing", EmptyDataRow)
	assert.True(t, IsQueryNotFound(err))
}

// slowFactory answers "slow" only when its context ends. Its executability
// check reads params, so it fails on a nil row.
type slowFactory struct {
	cancelled int
}

func (f *slowFactory) QueryData(ctx context.Context, query string, _ DataRow) (TableModel, error) {
	select {
	case <-ctx.Done():
		return nil, NewReportDataFactoryError(query, "query interrupted", ctx.Err())
	case <-time.After(5 * time.Second):
		return NewTableModel([]string{"late"}), nil
	}
}

func (f *slowFactory) IsQueryExecutable(query string, params DataRow) bool {
	return query == "slow" && params.Get("skip") == nil
}

func (f *slowFactory) QueryNames() []string                          { return []string{"slow"} }
func (f *slowFactory) MetaData() MetaData                            { return MetaData{Name: "slow"} }
func (f *slowFactory) Derive() DataFactory                           { return &slowFactory{} }
func (f *slowFactory) Initialize(context.Context, InitContext) error { return nil }
func (f *slowFactory) CancelRunningQuery()                           { f.cancelled++ }
func (f *slowFactory) Close() error                                  { return nil }

func TestCompoundDataFactory_QueryTimeout(t *testing.T) {
	slow := &slowFactory{}
	c := NewCompoundDataFactory(slow)

	params := NewStaticDataRow(map[string]any{QueryTimeoutParameter: 20 * time.Millisecond})
	_, err := c.QueryData(context.Background(), "slow", params)
	require.Error(t, err)
	assert.True(t, IsQueryTimeout(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	var timeoutErr *QueryTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "slow", timeoutErr.Query)
	assert.Equal(t, 20*time.Millisecond, timeoutErr.Timeout)
	assert.Equal(t, "query 'slow' timed out after 20ms", timeoutErr.Error())
	assert.Equal(t, 1, slow.cancelled)

	// Without the reserved parameter a cancelled caller is not a timeout.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.QueryData(ctx, "slow", EmptyDataRow)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsQueryTimeout(err))
}

func TestCompoundDataFactory_TimeoutLeavesFastQueries(t *testing.T) {
	c := NewCompoundDataFactory(tableFactory(t, "A"))
	params := NewStaticDataRow(map[string]any{QueryTimeoutParameter: 30})
	result, err := c.QueryData(context.Background(), "A", params)
	require.NoError(t, err)
	assert.Equal(t, "table:A", result.ValueAt(0, 0))
}

func TestQueryTimeoutParameter(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Duration
		ok    bool
	}{
		{"seconds", 2, 2 * time.Second, true},
		{"string seconds", "3", 3 * time.Second, true},
		{"duration", 150 * time.Millisecond, 150 * time.Millisecond, true},
		{"zero", 0, 0, false},
		{"negative duration", -time.Second, -time.Second, false},
		{"garbage", "soon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := QueryTimeout(NewStaticDataRow(map[string]any{QueryTimeoutParameter: tt.value}))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
	_, ok := QueryTimeout(nil)
	assert.False(t, ok)
}

func TestCompoundDataFactory_NilParams(t *testing.T) {
	c := NewCompoundDataFactory(&slowFactory{})

	fields, err := c.ReferencedFields("slow", nil)
	require.NoError(t, err)
	assert.Nil(t, fields)

	hash, err := c.QueryHash("slow", nil)
	require.NoError(t, err)
	assert.Empty(t, hash)

	f, path := c.Resolve("slow", nil)
	assert.NotNil(t, f)
	assert.Equal(t, "static", path)
	f, path = c.Resolve("missing", nil)
	assert.Nil(t, f)
	assert.Equal(t, "not_found", path)
}
