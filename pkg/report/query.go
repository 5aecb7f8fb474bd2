package report

import (
	"context"
	"fmt"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// EffectiveQueryLimit returns the row limit a query of def runs with, or 0
// for none. Positive values of QueryLimit and UserQueryLimit combine to the
// smaller one. A sub-report that inherits the query limit is also bound by
// the limit of its master report.
func EffectiveQueryLimit(def ReportDefinition) int {
	if isNilElement(def) {
		return 0
	}
	limit := minPositive(def.QueryLimit(), def.UserQueryLimit())
	if _, ok := def.(*SubReport); ok && def.IsQueryLimitInherited() {
		if m := def.AsElement().MasterReport(); m != nil {
			limit = minPositive(limit, EffectiveQueryLimit(m))
		}
	}
	return limit
}

func minPositive(a, b int) int {
	switch {
	case a <= 0 && b <= 0:
		return 0
	case a <= 0:
		return b
	case b <= 0:
		return a
	default:
		return min(a, b)
	}
}

// QueryParameters returns the columns of params plus the reserved row-limit
// and timeout parameters of def. Reserved values in params are replaced.
func QueryParameters(def ReportDefinition, params data.DataRow) data.DataRow {
	values := make(map[string]any)
	if params != nil {
		for _, c := range params.ColumnNames() {
			values[c] = params.Get(c)
		}
	}
	delete(values, data.QueryLimitParameter)
	delete(values, data.QueryTimeoutParameter)
	if limit := EffectiveQueryLimit(def); limit > 0 {
		values[data.QueryLimitParameter] = limit
	}
	if !isNilElement(def) && def.QueryTimeout() > 0 {
		values[data.QueryTimeoutParameter] = def.QueryTimeout()
	}
	return data.NewStaticDataRow(values)
}

// RunQuery executes the query of def with the reserved parameters added.
// A sub-report without a data factory of its own queries through the
// factory of its master report.
func RunQuery(ctx context.Context, def ReportDefinition, params data.DataRow) (data.TableModel, error) {
	if isNilElement(def) {
		return nil, newStructureError("run query", nil, ErrNilElement)
	}
	query := def.Query()
	if query == "" {
		return nil, fmt.Errorf("run query: %s has no query", describe(def))
	}
	factory := def.DataFactory()
	if isNilFactory(factory) {
		if m := def.AsElement().MasterReport(); m != nil {
			factory = m.DataFactory()
		}
	}
	if isNilFactory(factory) {
		return nil, data.NewQueryNotFoundError(query)
	}
	compound, ok := factory.(*data.CompoundDataFactory)
	if !ok {
		compound = data.Normalize(factory)
	}

	queryParams := QueryParameters(def, params)
	resolved, path := compound.Resolve(query, queryParams)
	entry := WithFields(Fields{"report": describe(def), "query": query, "path": path})
	if resolved != nil {
		entry = entry.WithField("factory", resolved.MetaData().Name)
	}
	entry.Debug("resolved query")

	result, err := compound.QueryData(ctx, query, queryParams)
	if err != nil {
		return nil, WithContext(err, "run query", map[string]interface{}{"report": describe(def), "query": query})
	}
	return result, nil
}

func isNilFactory(f data.DataFactory) bool {
	if f == nil {
		return true
	}
	c, ok := f.(*data.CompoundDataFactory)
	return ok && c == nil
}
