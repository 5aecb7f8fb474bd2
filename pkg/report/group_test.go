package report

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

func TestGroupBodyConstraints(t *testing.T) {
	groups := map[string]func() Group{
		"relational":      func() Group { return NewRelationalGroup() },
		"crosstab":        func() Group { return NewCrosstabGroup() },
		"crosstab other":  func() Group { return NewCrosstabOtherGroup() },
		"crosstab row":    func() Group { return NewCrosstabRowGroup() },
		"crosstab column": func() Group { return NewCrosstabColumnGroup() },
	}
	bodies := map[string]func() GroupBody{
		"data":        func() GroupBody { return NewGroupDataBody() },
		"sub group":   func() GroupBody { return NewSubGroupBody() },
		"other body":  func() GroupBody { return NewCrosstabOtherGroupBody() },
		"row body":    func() GroupBody { return NewCrosstabRowGroupBody() },
		"column body": func() GroupBody { return NewCrosstabColumnGroupBody() },
		"cell body":   func() GroupBody { return NewCrosstabCellBody() },
	}
	legal := map[string][]string{
		"relational":      {"data", "sub group"},
		"crosstab":        {"other body", "row body"},
		"crosstab other":  {"other body", "row body"},
		"crosstab row":    {"row body", "column body"},
		"crosstab column": {"column body", "cell body"},
	}

	for gName, newGroup := range groups {
		for bName, newBody := range bodies {
			want := slices.Contains(legal[gName], bName)
			t.Run(gName+" with "+bName, func(t *testing.T) {
				g := newGroup()
				old := g.Body()
				body := newBody()
				err := g.SetGroupBody(body)
				if want {
					require.NoError(t, err)
					assert.Equal(t, body, g.Body(), "body not installed")
					assert.Equal(t, Section(g), body.Parent())
					assert.Nil(t, old.Parent(), "replaced body kept its parent")
					return
				}
				require.ErrorIs(t, err, ErrIllegalBody)
				assert.Equal(t, old, g.Body(), "rejected body changed the group")
				assert.Nil(t, body.Parent())
			})
		}
	}
}

func TestCrosstabRowGroupBody(t *testing.T) {
	g := NewCrosstabRowGroup()
	assert.ErrorIs(t, g.SetGroupBody(NewCrosstabCellBody()), ErrIllegalBody)
	assert.NoError(t, g.SetBody(NewCrosstabRowGroupBody()))
	assert.NoError(t, g.SetBody(NewCrosstabColumnGroupBody()))
	assert.ErrorIs(t, g.SetGroupBody(nil), ErrNilElement)
}

func TestNestedGroupConstraints(t *testing.T) {
	tests := []struct {
		name    string
		holder  GroupHolder
		group   Group
		wantErr error
	}{
		{name: "sub group body takes relational", holder: NewSubGroupBody(), group: NewRelationalGroup()},
		{name: "sub group body takes crosstab", holder: NewSubGroupBody(), group: NewCrosstabGroup()},
		{name: "sub group body rejects row group", holder: NewSubGroupBody(), group: NewCrosstabRowGroup(), wantErr: ErrIllegalGroup},
		{name: "other body takes other group", holder: NewCrosstabOtherGroupBody(), group: NewCrosstabOtherGroup()},
		{name: "other body rejects relational", holder: NewCrosstabOtherGroupBody(), group: NewRelationalGroup(), wantErr: ErrIllegalGroup},
		{name: "row body takes row group", holder: NewCrosstabRowGroupBody(), group: NewCrosstabRowGroup()},
		{name: "row body rejects column group", holder: NewCrosstabRowGroupBody(), group: NewCrosstabColumnGroup(), wantErr: ErrIllegalGroup},
		{name: "column body takes column group", holder: NewCrosstabColumnGroupBody(), group: NewCrosstabColumnGroup()},
		{name: "column body rejects nil", holder: NewCrosstabColumnGroupBody(), group: nil, wantErr: ErrNilElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := tt.holder.NestedGroup()
			err := tt.holder.SetNestedGroup(tt.group)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, old, tt.holder.NestedGroup(), "rejected group replaced the nested group")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.group, tt.holder.NestedGroup(), "nested group not installed")
			assert.Equal(t, Section(tt.holder), tt.group.Parent())
		})
	}
}

func TestRemovingSlotInstallsDefault(t *testing.T) {
	tests := []struct {
		name    string
		section Section
	}{
		{name: "relational group", section: NewRelationalGroup()},
		{name: "group data body", section: NewGroupDataBody()},
		{name: "sub group body", section: NewSubGroupBody()},
		{name: "crosstab group", section: NewCrosstabGroup()},
		{name: "crosstab other group", section: NewCrosstabOtherGroup()},
		{name: "crosstab row group", section: NewCrosstabRowGroup()},
		{name: "crosstab column group", section: NewCrosstabColumnGroup()},
		{name: "crosstab other group body", section: NewCrosstabOtherGroupBody()},
		{name: "crosstab row group body", section: NewCrosstabRowGroupBody()},
		{name: "crosstab column group body", section: NewCrosstabColumnGroupBody()},
		{name: "master report", section: NewMasterReport()},
		{name: "sub-report", section: NewSubReport()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.section.ElementCount(); i++ {
				old := tt.section.ElementAt(i)
				tt.section.RemoveElement(old)

				fresh := tt.section.ElementAt(i)
				require.False(t, isNilElement(fresh), "slot %d is empty after removal", i)
				assert.False(t, sameElement(fresh, old), "slot %d still holds the removed element", i)
				assert.Equal(t, old.ElementType(), fresh.ElementType(), "slot %d default type", i)
				assert.Equal(t, tt.section, fresh.Parent(), "slot %d default has the wrong parent", i)
				assert.Nil(t, old.Parent(), "slot %d removed element kept its parent", i)
			}
		})
	}
}

func TestCrosstabCellBody(t *testing.T) {
	body := NewCrosstabCellBody()
	total := NewCrosstabCell()
	cell := NewCrosstabCell()
	cell.SetRowField("REGION")
	cell.SetColumnField("YEAR")

	require.NoError(t, body.AddCell(total))
	require.NoError(t, body.AddCell(cell))
	assert.ErrorIs(t, body.AddCell(nil), ErrNilElement)

	assert.Equal(t, 3, body.ElementCount())
	assert.Equal(t, ReportElement(body.Header()), body.ElementAt(0))
	assert.Same(t, cell, body.FindCell("REGION", "YEAR"))
	assert.Same(t, total, body.FindCell("", ""))

	body.RemoveElement(total)
	assert.Equal(t, 1, body.CellCount(), "cell not removed")
	assert.Nil(t, total.Parent())
	for i, c := range body.cells[:cap(body.cells)][len(body.cells):] {
		assert.Nil(t, c, "removed cell slot %d still references a cell", i)
	}

	c := body.Clone().(*CrosstabCellBody)
	require.Equal(t, 1, c.CellCount())
	assert.NotSame(t, cell, c.Cell(0), "clone did not copy the cells")
	assert.Equal(t, Section(c), c.Cell(0).Parent())
}

func TestIsGroupChange(t *testing.T) {
	g := NewRelationalGroup()
	g.SetFields([]string{"REGION", "PRODUCT"})

	row := data.NewStaticDataRow(map[string]any{"REGION": "East", "PRODUCT": "A", "AMOUNT": 1})
	assert.False(t, g.IsGroupChange(row), "unchanged row reported a group change")
	assert.True(t, g.IsGroupChange(row.Advance(map[string]any{"REGION": "East", "PRODUCT": "B", "AMOUNT": 2})),
		"changed PRODUCT did not report a group change")
	assert.False(t, g.IsGroupChange(row.Advance(map[string]any{"REGION": "East", "PRODUCT": "B", "AMOUNT": 3})),
		"changed AMOUNT reported a group change")

	empty := NewRelationalGroup()
	assert.False(t, empty.IsGroupChange(data.NewStaticDataRow(nil).MarkChanged("X")), "group without fields reported a change")

	ct := NewCrosstabGroup()
	row2 := ct.Body().(*CrosstabRowGroupBody).Group()
	row2.SetField("REGION")
	assert.True(t, ct.IsGroupChange(data.NewStaticDataRow(nil).MarkChanged("REGION")), "crosstab did not see a row field change")
	assert.True(t, row2.IsGroupChange(data.NewStaticDataRow(nil).MarkChanged("REGION")), "row group did not see its field change")
}

func TestGeneratedName(t *testing.T) {
	g := NewRelationalGroup()
	generated := g.GeneratedName()
	assert.Regexp(t, `^::group-`, generated)
	assert.Equal(t, generated, g.Clone().(*RelationalGroup).GeneratedName(), "clone changed the generated name")
	assert.NotEqual(t, generated, g.Derive(false).(*RelationalGroup).GeneratedName(),
		"derive kept the generated name of a fresh identity")

	g.SetName("Region")
	assert.Equal(t, "Region", g.GeneratedName())
}

func TestCrosstabDefaultsAndFields(t *testing.T) {
	ct := NewCrosstabGroup()
	groups := NestedGroups(ct)
	require.Len(t, groups, 3, "default crosstab levels")
	row, ok := groups[1].(*CrosstabRowGroup)
	require.True(t, ok, "level 1 is %T", groups[1])
	col, ok := groups[2].(*CrosstabColumnGroup)
	require.True(t, ok, "level 2 is %T", groups[2])
	assert.IsType(t, &CrosstabCellBody{}, col.Body())

	other := NewCrosstabOtherGroupBody()
	other.Group().SetField("COUNTRY")
	require.NoError(t, other.Group().SetBody(ct.Body().(*CrosstabRowGroupBody)))
	// Moving the row body left the crosstab with a fresh default.
	require.NoError(t, ct.SetBody(other))
	row.SetField("REGION")
	col.SetField("YEAR")

	assert.Equal(t, []string{"COUNTRY", "REGION", "YEAR"}, ct.Fields())
}
