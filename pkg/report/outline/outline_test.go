package outline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report"
	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

func loadReport(t *testing.T, name string) *report.MasterReport {
	t.Helper()
	o, err := Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	r, err := o.Build()
	require.NoError(t, err)
	return r
}

func TestBuildSalesOutline(t *testing.T) {
	r := loadReport(t, "sales.yaml")

	assert.Equal(t, "sales", r.Name())
	assert.Equal(t, "orders", r.Query())
	assert.Equal(t, 500, r.QueryLimit())
	assert.Equal(t, "Sales by region", r.DocumentMetaData().Title())
	assert.Equal(t, "de_DE", r.ReportEnvironment().Locale())
	assert.Equal(t, "de_DE", r.ResourceBundleFactory().Locale())
	server, ok := r.ReportEnvironment().EnvironmentProperty("server")
	assert.True(t, ok)
	assert.Equal(t, "http://reports.local", server)

	require.Equal(t, 3, r.GroupCount())
	assert.Equal(t, r.Group(1), r.GroupByName("Region"))
	region := r.Group(1).(*report.RelationalGroup)
	assert.Equal(t, []string{"REGION"}, region.Fields())
	assert.True(t, region.Header().IsRepeat())
	assert.Equal(t, 1, region.Header().ElementCount())

	assert.Equal(t, 1, r.ItemBand().ElementCount())
	assert.Equal(t, "amount", r.ItemBand().ElementAt(0).Name())
	assert.Equal(t, 1, r.NoDataBand().ElementCount())
	assert.False(t, r.PageFooter().ElementAt(0).AsElement().IsVisible())

	title := report.FindElementByName(r, "title")
	require.NotNil(t, title)
	assert.Equal(t, true, title.AsElement().Style().StyleProperty(report.StyleBold))
	assert.Equal(t, 18, title.AsElement().Style().StyleProperty(report.StyleFontSize))

	entry, ok := r.ParameterDefinition().Entry("year")
	require.True(t, ok)
	assert.Equal(t, 2024, entry.DefaultValue)
	assert.NoError(t, r.ValidateParameters())

	assert.NotNil(t, r.Expressions().ByName("total"))
	assert.True(t, r.CompoundDataFactory().IsQueryExecutable("orders", nil))

	subs := report.SubReports(r)
	require.Len(t, subs, 1)
	sub := subs[0]
	assert.Equal(t, "summary", sub.Name())
	assert.True(t, sub.IsQueryLimitInherited())
	assert.Equal(t, []report.ParameterMapping{{Name: "year", Alias: "year"}}, sub.InputMappings())
	assert.Equal(t, 1, sub.ItemBand().ElementCount())
	assert.Nil(t, sub.DataFactory())

	assert.NoError(t, report.ValidateDefinition(r))
}

func TestBuildCrosstabOutline(t *testing.T) {
	r := loadReport(t, "crosstab.yaml")

	ct, ok := r.GroupByName("Matrix").(*report.CrosstabGroup)
	require.True(t, ok, "Matrix should be a crosstab")
	assert.Equal(t, []string{"CHANNEL", "REGION", "YEAR"}, ct.Fields())
	assert.Equal(t, []string{"AMOUNT"}, ct.PaddingFields())
	assert.Nil(t, r.ItemBand())

	groups := report.NestedGroups(ct)
	require.Len(t, groups, 4)
	row := groups[2].(*report.CrosstabRowGroup)
	assert.True(t, row.IsPrintSummary())
	assert.Equal(t, 1, row.Header().ElementCount())
	col := groups[3].(*report.CrosstabColumnGroup)
	assert.Equal(t, 1, col.TitleHeader().ElementCount())

	cells, ok := col.Body().(*report.CrosstabCellBody)
	require.True(t, ok)
	assert.NotNil(t, cells.FindCell("REGION", "YEAR"))

	assert.NoError(t, report.ValidateDefinition(r))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "outline is empty"},
		{name: "unknown key", input: "name: x\ncolour: red\n", wantErr: "colour"},
		{name: "bad yaml", input: "name: [", wantErr: "parse outline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	_, err := Parse(nil)
	assert.True(t, errors.Is(err, ErrEmptyOutline))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "element without content",
			input:   "report_header:\n  elements:\n    - name: x\n",
			wantErr: "needs a label or a field",
		},
		{
			name:    "label and field",
			input:   "report_header:\n  elements:\n    - label: a\n      field: b\n",
			wantErr: "either a label or a field",
		},
		{
			name:    "unknown style",
			input:   "report_header:\n  elements:\n    - label: a\n      style:\n        blink: true\n",
			wantErr: "unknown style key",
		},
		{
			name:    "crosstab without columns",
			input:   "groups:\n  - crosstab:\n      rows:\n        - field: A\n      columns: []\n",
			wantErr: "at least one row and one column",
		},
		{
			name:    "details below crosstab",
			input:   "groups:\n  - crosstab:\n      rows: [{field: A}]\n      columns: [{field: B}]\ndetails:\n  items:\n    elements: [{field: C}]\n",
			wantErr: "details need a relational data body",
		},
		{
			name:    "two crosstabs",
			input:   "groups:\n  - crosstab:\n      rows: [{field: A}]\n      columns: [{field: B}]\n  - crosstab:\n      rows: [{field: A}]\n      columns: [{field: B}]\n",
			wantErr: "group 1",
		},
		{
			name:    "bad wildcard mapping",
			input:   "report_header:\n  subreports:\n    - inputs:\n        - name: \"*\"\n          alias: x\n",
			wantErr: "wildcard",
		},
		{
			name:    "unknown parameter type",
			input:   "parameters:\n  - name: x\n    type: decimal\n",
			wantErr: "unknown value type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			_, err = o.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestMarshalRoundTrip(t *testing.T) {
	o, err := Load(filepath.Join("testdata", "sales.yaml"))
	require.NoError(t, err)

	b, err := o.Marshal()
	require.NoError(t, err)
	again, err := Parse(b)
	require.NoError(t, err)

	r, err := again.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, r.GroupCount())
	assert.Equal(t, "Sales by region", r.DocumentMetaData().Title())
}

func TestSummarize(t *testing.T) {
	r := loadReport(t, "sales.yaml")
	tree := Summarize(r)

	assert.Equal(t, "master-report", tree.Type)
	assert.Equal(t, "sales", tree.Name)
	assert.Len(t, tree.Children, 6)

	count := 0
	require.NoError(t, report.Walk(r, func(report.ReportElement, int) error {
		count++
		return nil
	}))
	assert.Equal(t, count, tree.Count())

	root := tree.Children[2]
	require.NotNil(t, root.Group)
	assert.Equal(t, 0, *root.Group)

	var text bytes.Buffer
	require.NoError(t, tree.WriteText(&text))
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	assert.Len(t, lines, count)
	assert.True(t, strings.HasPrefix(lines[0], `master-report "sales" id=`))
	assert.Contains(t, text.String(), `relational-group "Region" group=1`)

	var out bytes.Buffer
	require.NoError(t, tree.WriteYAML(&out))
	assert.Contains(t, out.String(), "type: master-report")
}

func TestTablesAreQueryable(t *testing.T) {
	r := loadReport(t, "sales.yaml")
	f := r.CompoundDataFactory().DataFactoryForQuery("orders", false)
	require.NotNil(t, f)
	tables, ok := f.(*data.TableDataFactory)
	require.True(t, ok)
	table, ok := tables.Table("orders")
	require.True(t, ok)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, "West", table.ValueAt(1, 0))
}
