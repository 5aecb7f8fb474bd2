// Package data defines the boundary between a report definition and the
// sources that supply its tabular data.
//
// A report never talks to a database or file directly. It names queries, and
// a DataFactory resolves those names into TableModels at processing time.
//
// # Key Concepts
//
// DataRow: The read-only view of the current row of a report run. Groups use
// IsChanged to detect group breaks; factories receive a DataRow as the query
// parameter set.
//
// DataFactory: Executes named or free-form queries. Factories are derived
// before every report run so that a shared template never hands the same
// factory instance to two concurrent runs.
//
// CompoundDataFactory: An ordered list of factories. Static factories (those
// with a fixed set of query names) are consulted before free-form factories
// (those accepting arbitrary query text such as SQL). Within each class the
// first registered factory wins.
//
// # Reserved Parameters
//
// QueryLimitParameter and QueryTimeoutParameter carry the row limit and the
// timeout of a query run. Factories that honour limits read them from the
// parameter DataRow:
//
//	if limit, ok := data.QueryLimit(params); ok {
//	    rows = rows[:limit]
//	}
package data
