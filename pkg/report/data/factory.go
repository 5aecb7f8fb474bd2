package data

import (
	"context"
	"strconv"
	"time"
)

// Reserved parameter names through which a report passes row limits and
// timeouts to its data source. Existing factory implementations key off
// these exact strings.
const (
	QueryLimitParameter   = "::org.pentaho.reporting::query-limit"
	QueryTimeoutParameter = "::org.pentaho.reporting::query-timeout"
)

// MetaData describes a DataFactory implementation.
type MetaData struct {
	// Name is a short display name of the factory kind.
	Name string
	// FreeFormQuery is true for factories that accept arbitrary query text
	// (SQL, MDX, scripts) rather than a fixed set of query names.
	FreeFormQuery bool
}

// InitContext is handed to DataFactory.Initialize before the first query.
type InitContext struct {
	// Locale of the report run, e.g. "en_US".
	Locale string
	// Properties are environment properties of the report run.
	Properties map[string]string
}

// DataFactory executes queries on behalf of a report.
//
// Factories are not safe for concurrent use. A report run works on its own
// derived factory; the template's factory is never queried directly.
type DataFactory interface {
	// QueryData executes the query and returns its result.
	QueryData(ctx context.Context, query string, params DataRow) (TableModel, error)
	// IsQueryExecutable reports whether this factory can answer the query.
	IsQueryExecutable(query string, params DataRow) bool
	// QueryNames returns the statically declared query names.
	QueryNames() []string
	// MetaData describes the factory.
	MetaData() MetaData
	// Derive returns an independent copy that shares no mutable state with
	// the receiver.
	Derive() DataFactory
	// Initialize prepares the factory for queries.
	Initialize(ctx context.Context, ic InitContext) error
	// CancelRunningQuery asks a running query to stop. It is a hint: the
	// call returns immediately and the query may still complete.
	CancelRunningQuery()
	// Close releases resources held by the factory.
	Close() error
}

// QueryIntrospector is implemented by factories that can describe a query
// without running it.
type QueryIntrospector interface {
	// ReferencedFields returns the parameter fields the query reads. A nil
	// slice means the fields cannot be determined.
	ReferencedFields(query string, params DataRow) ([]string, error)
	// QueryHash returns a value that identifies the query and its
	// configuration, usable as a cache key for query results.
	QueryHash(query string, params DataRow) (string, error)
}

// QueryLimit reads the reserved row-limit parameter. It reports false if the
// parameter is absent or not a positive number.
func QueryLimit(params DataRow) (int, bool) {
	if params == nil {
		return 0, false
	}
	n, ok := toInt(params.Get(QueryLimitParameter))
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// QueryTimeout reads the reserved timeout parameter, given in seconds or as
// a time.Duration.
func QueryTimeout(params DataRow) (time.Duration, bool) {
	if params == nil {
		return 0, false
	}
	v := params.Get(QueryTimeoutParameter)
	if d, ok := v.(time.Duration); ok {
		return d, d > 0
	}
	n, ok := toInt(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
