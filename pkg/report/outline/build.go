package outline

import (
	"errors"
	"fmt"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report"
	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// definition is the mutable surface shared by master and sub-reports.
type definition interface {
	report.ReportDefinition
	SetName(name string)
	SetQuery(query string)
	SetQueryLimit(limit int)
	SetQueryTimeout(seconds int)
	SetQueryLimitInherited(inherited bool)
	SetDataFactory(f data.DataFactory)
	AddExpression(e report.Expression) error
	AddGroup(g report.TopLevelGroup) error
	ItemBand() *report.ItemBand
	NoDataBand() *report.NoDataBand
	DetailsHeader() *report.DetailsHeader
	DetailsFooter() *report.DetailsFooter
}

// Build creates a master report from the outline.
func (o *Outline) Build() (*report.MasterReport, error) {
	r := report.NewMasterReport()
	if err := o.Definition.apply(r); err != nil {
		return nil, report.WithContext(err, "build outline", map[string]interface{}{"report": o.Name})
	}

	if o.Title != "" {
		r.DocumentMetaData().Set(report.MetaTitle, o.Title)
	}
	if len(o.Environment) > 0 || o.Locale != "" {
		env := report.NewDefaultReportEnvironment(nil)
		for k, v := range o.Environment {
			env.SetEnvironmentProperty(k, v)
		}
		if o.Locale != "" {
			env.SetLocale(o.Locale)
			r.SetResourceBundleFactory(report.NewDefaultResourceBundleFactory(o.Locale))
		}
		r.SetReportEnvironment(env)
	}
	for _, p := range o.Parameters {
		entry := report.ParameterDefinitionEntry{
			Name:         p.Name,
			Label:        p.Label,
			ValueType:    p.Type,
			DefaultValue: p.Default,
			Mandatory:    p.Mandatory,
		}
		if err := r.ParameterDefinition().Add(entry); err != nil {
			return nil, report.WithContext(err, "build outline", map[string]interface{}{"report": o.Name})
		}
	}

	report.WithFields(report.Fields{"report": o.Name, "groups": r.GroupCount()}).Debug("outline built")
	return r, nil
}

func (d *Definition) apply(def definition) error {
	if d.Name != "" {
		def.SetName(d.Name)
	}
	if d.Query != "" {
		def.SetQuery(d.Query)
	}
	if d.QueryLimit != nil {
		def.SetQueryLimit(*d.QueryLimit)
	}
	if d.QueryTimeout != nil {
		def.SetQueryTimeout(*d.QueryTimeout)
	}
	if d.QueryLimitInherited != nil {
		def.SetQueryLimitInherited(*d.QueryLimitInherited)
	}
	if len(d.Tables) > 0 {
		tables := data.NewTableDataFactory()
		for _, t := range d.Tables {
			if err := tables.AddTable(t.Name, data.NewTableModel(t.Columns, t.Rows...)); err != nil {
				return err
			}
		}
		def.SetDataFactory(tables)
	}
	for _, e := range d.Expressions {
		if err := def.AddExpression(buildExpression(e)); err != nil {
			return err
		}
	}

	slots := []struct {
		src  *Band
		band *report.Band
	}{
		{d.PageHeader, &def.PageHeader().Band},
		{d.ReportHeader, &def.ReportHeader().Band},
		{d.ReportFooter, &def.ReportFooter().Band},
		{d.PageFooter, &def.PageFooter().Band},
		{d.Watermark, &def.Watermark().Band},
	}
	for _, s := range slots {
		if err := fillBand(s.band, s.src); err != nil {
			return err
		}
	}

	for i, g := range d.Groups {
		group, err := buildGroup(g)
		if err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
		if err := def.AddGroup(group); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}
	return d.applyDetails(def)
}

func (d *Definition) applyDetails(def definition) error {
	if d.Details == nil {
		return nil
	}
	if def.ItemBand() == nil {
		return errors.New("details need a relational data body, the report ends in a crosstab")
	}
	if err := fillBand(&def.DetailsHeader().Band, d.Details.Header); err != nil {
		return err
	}
	if d.Details.Header != nil {
		def.DetailsHeader().SetRepeat(d.Details.Header.Repeat)
	}
	if err := fillBand(&def.ItemBand().Band, d.Details.Items); err != nil {
		return err
	}
	if err := fillBand(&def.DetailsFooter().Band, d.Details.Footer); err != nil {
		return err
	}
	return fillBand(&def.NoDataBand().Band, d.Details.NoData)
}

func buildExpression(e Expression) report.Expression {
	if e.Field != "" {
		return &report.FieldExpression{ExpressionName: e.Name, Field: e.Field}
	}
	return &report.StaticExpression{ExpressionName: e.Name, Result: e.Value}
}

func buildGroup(g Group) (report.TopLevelGroup, error) {
	if g.Crosstab != nil {
		if len(g.Fields) > 0 || g.Header != nil || g.Footer != nil {
			return nil, errors.New("a crosstab group takes its fields from its dimensions")
		}
		ct, err := buildCrosstab(g.Crosstab)
		if err != nil {
			return nil, err
		}
		if g.Name != "" {
			ct.SetName(g.Name)
		}
		return ct, nil
	}

	rg := report.NewRelationalGroup()
	if g.Name != "" {
		rg.SetName(g.Name)
	}
	rg.SetFields(g.Fields)
	if err := fillBand(&rg.Header().Band, g.Header); err != nil {
		return nil, err
	}
	if g.Header != nil {
		rg.Header().SetRepeat(g.Header.Repeat)
	}
	if err := fillBand(&rg.Footer().Band, g.Footer); err != nil {
		return nil, err
	}
	return rg, nil
}

// buildCrosstab assembles the crosstab from the innermost cell body
// outwards: columns, then rows, then other groups.
func buildCrosstab(c *Crosstab) (*report.CrosstabGroup, error) {
	if len(c.Rows) == 0 || len(c.Columns) == 0 {
		return nil, errors.New("a crosstab needs at least one row and one column dimension")
	}

	cells := report.NewCrosstabCellBody()
	for _, src := range c.Cells {
		cell := report.NewCrosstabCell()
		cell.SetRowField(src.Row)
		cell.SetColumnField(src.Column)
		if err := addElements(&cell.Band, src.Elements); err != nil {
			return nil, err
		}
		if err := cells.AddCell(cell); err != nil {
			return nil, err
		}
	}

	var columnBody report.CrosstabColumnLevelBody = cells
	var rowBody report.CrosstabRowLevelBody
	for i := len(c.Columns) - 1; i >= 0; i-- {
		g := report.NewCrosstabColumnGroup()
		dim := c.Columns[i]
		g.SetField(dim.Field)
		g.SetPrintSummary(dim.PrintSummary)
		if err := fillDimension(&g.Element, &g.TitleHeader().Band, &g.Header().Band, &g.SummaryHeader().Band, dim); err != nil {
			return nil, err
		}
		if err := g.SetBody(columnBody); err != nil {
			return nil, err
		}
		holder := report.NewCrosstabColumnGroupBody()
		if err := holder.SetGroup(g); err != nil {
			return nil, err
		}
		columnBody, rowBody = holder, holder
	}

	var otherBody report.CrosstabOtherLevelBody
	for i := len(c.Rows) - 1; i >= 0; i-- {
		g := report.NewCrosstabRowGroup()
		dim := c.Rows[i]
		g.SetField(dim.Field)
		g.SetPrintSummary(dim.PrintSummary)
		if err := fillDimension(&g.Element, &g.TitleHeader().Band, &g.Header().Band, &g.SummaryHeader().Band, dim); err != nil {
			return nil, err
		}
		if err := g.SetBody(rowBody); err != nil {
			return nil, err
		}
		holder := report.NewCrosstabRowGroupBody()
		if err := holder.SetGroup(g); err != nil {
			return nil, err
		}
		rowBody, otherBody = holder, holder
	}

	for i := len(c.Others) - 1; i >= 0; i-- {
		g := report.NewCrosstabOtherGroup()
		dim := c.Others[i]
		g.SetField(dim.Field)
		if dim.Name != "" {
			g.SetName(dim.Name)
		}
		if dim.Title != nil || dim.Summary != nil || dim.PrintSummary {
			return nil, fmt.Errorf("other dimension %q supports a header only", dim.Field)
		}
		if err := fillBand(&g.Header().Band, dim.Header); err != nil {
			return nil, err
		}
		if err := g.SetBody(otherBody); err != nil {
			return nil, err
		}
		holder := report.NewCrosstabOtherGroupBody()
		if err := holder.SetGroup(g); err != nil {
			return nil, err
		}
		otherBody = holder
	}

	ct := report.NewCrosstabGroup()
	ct.SetPaddingFields(c.PaddingFields)
	if err := ct.SetBody(otherBody); err != nil {
		return nil, err
	}
	return ct, nil
}

func fillDimension(group *report.Element, title, header, summary *report.Band, dim Dimension) error {
	if dim.Name != "" {
		group.SetName(dim.Name)
	}
	if err := fillBand(title, dim.Title); err != nil {
		return err
	}
	if err := fillBand(header, dim.Header); err != nil {
		return err
	}
	return fillBand(summary, dim.Summary)
}

func fillBand(band *report.Band, src *Band) error {
	if src == nil {
		return nil
	}
	if src.Name != "" {
		band.SetName(src.Name)
	}
	if err := addElements(band, src.Elements); err != nil {
		return err
	}
	for i := range src.SubReports {
		sub, err := src.SubReports[i].build()
		if err != nil {
			return fmt.Errorf("sub-report %d: %w", i, err)
		}
		if err := band.AddElement(sub); err != nil {
			return err
		}
	}
	return nil
}

func addElements(band *report.Band, specs []Element) error {
	for i, src := range specs {
		e, err := buildElement(src)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		if err := band.AddElement(e); err != nil {
			return err
		}
	}
	return nil
}

func buildElement(src Element) (*report.Element, error) {
	var e *report.Element
	switch {
	case src.Label != "" && src.Field != "":
		return nil, errors.New("an element is either a label or a field")
	case src.Label != "":
		e = report.NewLabel(src.Label)
	case src.Field != "":
		e = report.NewTextField(src.Field)
	default:
		return nil, errors.New("an element needs a label or a field")
	}
	if src.Name != "" {
		e.SetName(src.Name)
	}
	if src.Visible != nil {
		e.SetVisible(*src.Visible)
	}
	for name, value := range src.Style {
		key, ok := report.LookupStyleKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown style key %q", name)
		}
		e.Style().SetStyleProperty(key, value)
	}
	return e, nil
}

func (s *SubReport) build() (*report.SubReport, error) {
	sub := report.NewSubReport()
	if err := s.Definition.apply(sub); err != nil {
		return nil, err
	}
	for _, m := range s.Inputs {
		if err := sub.AddInputParameter(m.Name, m.Alias); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Exports {
		if err := sub.AddExportParameter(m.Name, m.Alias); err != nil {
			return nil, err
		}
	}
	return sub, nil
}
