package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

func issueCodes(t *testing.T, err error) map[string]IssueSeverity {
	t.Helper()
	codes := make(map[string]IssueSeverity)
	if err == nil {
		return codes
	}
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, issue := range verr.Issues {
		codes[issue.Code] = issue.Severity
	}
	return codes
}

// subReportWithAliasClash returns a sub-report whose two input mappings
// share the alias "r".
func subReportWithAliasClash(t *testing.T) *SubReport {
	t.Helper()
	sub := NewSubReport()
	require.NoError(t, sub.AddInputParameter("REGION", "r"))
	require.NoError(t, sub.AddInputParameter("COUNTRY", "r"))
	return sub
}

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) ReportDefinition
		want  map[string]IssueSeverity
	}{
		{
			name:  "fresh report",
			build: func(*testing.T) ReportDefinition { return NewMasterReport() },
			want:  map[string]IssueSeverity{},
		},
		{
			name:  "sample report",
			build: func(t *testing.T) ReportDefinition { return sampleReport(t) },
			want:  map[string]IssueSeverity{},
		},
		{
			name: "nested group without fields",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				require.NoError(t, r.AddGroup(NewRelationalGroup()))
				return r
			},
			want: map[string]IssueSeverity{"group_without_fields": IssueSeverityWarning},
		},
		{
			name: "duplicate group names",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				r.RootGroup().AsElement().SetName("Region")
				g := NewRelationalGroup()
				g.SetName("Region")
				g.AddField("REGION")
				require.NoError(t, r.AddGroup(g))
				return r
			},
			want: map[string]IssueSeverity{"duplicate_group_name": IssueSeverityWarning},
		},
		{
			name: "cloned element inserted twice",
			build: func(t *testing.T) ReportDefinition {
				r := sampleReport(t)
				label := mustFind(t, r, "amount-label")
				require.NoError(t, r.ReportHeader().AddElement(label.Clone()))
				return r
			},
			want: map[string]IssueSeverity{"duplicate_id": IssueSeverityWarning},
		},
		{
			name: "broken parent reference",
			build: func(t *testing.T) ReportDefinition {
				r := sampleReport(t)
				release(mustFind(t, r, "amount-field"))
				return r
			},
			want: map[string]IssueSeverity{"parent_mismatch": IssueSeverityError},
		},
		{
			name: "unknown query",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				tables := data.NewTableDataFactory()
				require.NoError(t, tables.AddTable("orders", data.NewTableModel([]string{"ID"})))
				r.SetDataFactory(tables)
				r.SetQuery("customers")
				return r
			},
			want: map[string]IssueSeverity{"query_unknown": IssueSeverityWarning},
		},
		{
			name: "known query",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				tables := data.NewTableDataFactory()
				require.NoError(t, tables.AddTable("orders", data.NewTableModel([]string{"ID"})))
				r.SetDataFactory(tables)
				r.SetQuery("orders")
				return r
			},
			want: map[string]IssueSeverity{},
		},
		{
			name: "crosstab without cells",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				require.NoError(t, r.AddGroup(NewCrosstabGroup()))
				return r
			},
			want: map[string]IssueSeverity{"crosstab_without_cells": IssueSeverityWarning},
		},
		{
			name: "crosstab missing the innermost cell",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				ct := NewCrosstabGroup()
				groups := NestedGroups(ct)
				groups[1].(*CrosstabRowGroup).SetField("REGION")
				col := groups[2].(*CrosstabColumnGroup)
				col.SetField("YEAR")
				require.NoError(t, col.Body().(*CrosstabCellBody).AddCell(NewCrosstabCell()))
				require.NoError(t, r.AddGroup(ct))
				return r
			},
			want: map[string]IssueSeverity{"crosstab_cell_missing": IssueSeverityWarning},
		},
		{
			name: "complete crosstab",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				ct := NewCrosstabGroup()
				groups := NestedGroups(ct)
				groups[1].(*CrosstabRowGroup).SetField("REGION")
				col := groups[2].(*CrosstabColumnGroup)
				col.SetField("YEAR")
				cell := NewCrosstabCell()
				cell.SetRowField("REGION")
				cell.SetColumnField("YEAR")
				require.NoError(t, col.Body().(*CrosstabCellBody).AddCell(cell))
				require.NoError(t, r.AddGroup(ct))
				return r
			},
			want: map[string]IssueSeverity{},
		},
		{
			name: "duplicate mapping alias",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				require.NoError(t, r.ReportHeader().AddElement(subReportWithAliasClash(t)))
				return r
			},
			want: map[string]IssueSeverity{"duplicate_mapping_alias": IssueSeverityError},
		},
		{
			name: "duplicate mapping alias in a nested sub-report",
			build: func(t *testing.T) ReportDefinition {
				r := NewMasterReport()
				outer := NewSubReport()
				require.NoError(t, outer.ItemBand().AddElement(subReportWithAliasClash(t)))
				require.NoError(t, r.ReportFooter().AddElement(outer))
				return r
			},
			want: map[string]IssueSeverity{"duplicate_mapping_alias": IssueSeverityError},
		},
		{
			name:  "duplicate mapping alias on the validated sub-report",
			build: func(t *testing.T) ReportDefinition { return subReportWithAliasClash(t) },
			want:  map[string]IssueSeverity{"duplicate_mapping_alias": IssueSeverityError},
		},
		{
			name: "sub-report without factory",
			build: func(*testing.T) ReportDefinition {
				sub := NewSubReport()
				sub.SetQuery("anything")
				return sub
			},
			want: map[string]IssueSeverity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, issueCodes(t, ValidateDefinition(tt.build(t))))
		})
	}
}

func TestValidateDefinitionNestedPath(t *testing.T) {
	r := NewMasterReport()
	outer := NewSubReport()
	outer.SetName("outer")
	inner := subReportWithAliasClash(t)
	inner.SetName("inner")
	require.NoError(t, outer.ItemBand().AddElement(inner))
	require.NoError(t, r.ReportHeader().AddElement(outer))

	var verr *ValidationError
	require.ErrorAs(t, ValidateDefinition(r), &verr)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Path, "sub-report[outer]/")
	assert.Regexp(t, `sub-report\[inner\]$`, verr.Issues[0].Path)
}

func TestValidateDefinitionNil(t *testing.T) {
	var r *MasterReport
	got := issueCodes(t, ValidateDefinition(r))
	assert.Equal(t, IssueSeverityError, got["nil_definition"])
}

func TestValidateDefinitionStrict(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	config := GetGlobalConfig()
	config.StrictStructure = true
	SetGlobalConfig(config)

	r := NewMasterReport()
	require.NoError(t, r.AddGroup(NewRelationalGroup()))
	err := ValidateDefinition(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasErrors(), "strict validation did not report errors")
	assert.Equal(t, IssueSeverityError, issueCodes(t, err)["group_without_fields"])
}
