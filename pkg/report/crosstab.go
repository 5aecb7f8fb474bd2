package report

import "github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"

// CrosstabGroup is the root of a crosstab. Its body nests optional other
// groups, then row groups, then column groups, and ends in a cell body.
type CrosstabGroup struct {
	Element
	body CrosstabOtherLevelBody
}

// NewCrosstabGroup creates a crosstab with one row group and one column
// group around an empty cell body.
func NewCrosstabGroup() *CrosstabGroup {
	g := &CrosstabGroup{}
	g.init(g, CrosstabGroupType)
	g.body = NewCrosstabRowGroupBody()
	adopt(g, g.body)
	return g
}

func (g *CrosstabGroup) Body() GroupBody { return g.body }

func (g *CrosstabGroup) SetBody(body CrosstabOtherLevelBody) error {
	return setSlot(g, "set body", &g.body, body)
}

func (g *CrosstabGroup) SetGroupBody(body GroupBody) error {
	if err := checkBody(g, body); err != nil {
		return err
	}
	return g.SetBody(body.(CrosstabOtherLevelBody))
}

// PaddingFields are columns added to the generated data to fill missing
// row/column combinations.
func (g *CrosstabGroup) PaddingFields() []string {
	return g.stringsAttribute(CrosstabNamespace, AttrPaddingFields)
}

func (g *CrosstabGroup) SetPaddingFields(fields []string) {
	g.setStringsAttribute(CrosstabNamespace, AttrPaddingFields, fields)
}

// Fields returns the fields of every nested crosstab group, outermost first.
func (g *CrosstabGroup) Fields() []string {
	var fields []string
	for _, nested := range NestedGroups(g)[1:] {
		if f, ok := nested.(interface{ Field() string }); ok && f.Field() != "" {
			fields = append(fields, f.Field())
		}
	}
	return fields
}

// IsGroupChange reports whether any nested group field changed in row.
func (g *CrosstabGroup) IsGroupChange(row data.DataRow) bool {
	return groupChanged(row, g.Fields()...)
}

func (g *CrosstabGroup) GeneratedName() string { return generatedGroupName(&g.Element) }

func (g *CrosstabGroup) ElementCount() int { return 1 }

func (g *CrosstabGroup) ElementAt(index int) ReportElement {
	return slotAt(index, g.body)
}

func (g *CrosstabGroup) RemoveElement(child ReportElement) {
	if sameElement(child, g.body) {
		_ = g.SetBody(NewCrosstabRowGroupBody())
	}
}

func (g *CrosstabGroup) copyElement(m copyMode) ReportElement {
	n := &CrosstabGroup{}
	g.Element.copyInto(&n.Element, n, m)
	n.body = copyChild(n, m, g.body)
	return n
}

func (g *CrosstabGroup) kind() structureKind { return kindCrosstabGroup }
func (g *CrosstabGroup) topLevel()           {}

// CrosstabOtherGroup is a plain grouping level wrapped around the row
// groups of a crosstab. Each instance prints its own crosstab.
type CrosstabOtherGroup struct {
	Element
	header *GroupHeader
	body   CrosstabOtherLevelBody
	footer *GroupFooter
}

func NewCrosstabOtherGroup() *CrosstabOtherGroup {
	g := &CrosstabOtherGroup{}
	g.init(g, CrosstabOtherGroupType)
	g.header = NewGroupHeader()
	g.body = NewCrosstabRowGroupBody()
	g.footer = NewGroupFooter()
	adopt(g, g.header)
	adopt(g, g.body)
	adopt(g, g.footer)
	return g
}

func (g *CrosstabOtherGroup) Header() *GroupHeader { return g.header }
func (g *CrosstabOtherGroup) Footer() *GroupFooter { return g.footer }
func (g *CrosstabOtherGroup) Body() GroupBody      { return g.body }

func (g *CrosstabOtherGroup) SetHeader(header *GroupHeader) error {
	return setSlot(g, "set header", &g.header, header)
}

func (g *CrosstabOtherGroup) SetFooter(footer *GroupFooter) error {
	return setSlot(g, "set footer", &g.footer, footer)
}

func (g *CrosstabOtherGroup) SetBody(body CrosstabOtherLevelBody) error {
	return setSlot(g, "set body", &g.body, body)
}

func (g *CrosstabOtherGroup) SetGroupBody(body GroupBody) error {
	if err := checkBody(g, body); err != nil {
		return err
	}
	return g.SetBody(body.(CrosstabOtherLevelBody))
}

func (g *CrosstabOtherGroup) Field() string { return g.stringAttribute(CoreNamespace, AttrField) }

func (g *CrosstabOtherGroup) SetField(field string) {
	g.SetAttribute(CoreNamespace, AttrField, nilIfEmpty(field))
}

func (g *CrosstabOtherGroup) IsGroupChange(row data.DataRow) bool {
	return groupChanged(row, g.Field())
}

func (g *CrosstabOtherGroup) GeneratedName() string { return generatedGroupName(&g.Element) }

func (g *CrosstabOtherGroup) ElementCount() int { return 3 }

func (g *CrosstabOtherGroup) ElementAt(index int) ReportElement {
	return slotAt(index, g.header, g.body, g.footer)
}

func (g *CrosstabOtherGroup) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, g.header):
		_ = g.SetHeader(NewGroupHeader())
	case sameElement(child, g.body):
		_ = g.SetBody(NewCrosstabRowGroupBody())
	case sameElement(child, g.footer):
		_ = g.SetFooter(NewGroupFooter())
	}
}

func (g *CrosstabOtherGroup) copyElement(m copyMode) ReportElement {
	n := &CrosstabOtherGroup{}
	g.Element.copyInto(&n.Element, n, m)
	n.header = copyChild(n, m, g.header)
	n.body = copyChild(n, m, g.body)
	n.footer = copyChild(n, m, g.footer)
	return n
}

func (g *CrosstabOtherGroup) kind() structureKind { return kindCrosstabOtherGroup }

// CrosstabRowGroup is one level of the row dimension.
type CrosstabRowGroup struct {
	Element
	header        *CrosstabHeader
	titleHeader   *CrosstabTitleHeader
	summaryHeader *CrosstabSummaryHeader
	body          CrosstabRowLevelBody
}

// NewCrosstabRowGroup creates a row group whose body holds one column group.
func NewCrosstabRowGroup() *CrosstabRowGroup {
	g := &CrosstabRowGroup{}
	g.init(g, CrosstabRowGroupType)
	g.header = NewCrosstabHeader()
	g.titleHeader = NewCrosstabTitleHeader()
	g.summaryHeader = NewCrosstabSummaryHeader()
	g.body = NewCrosstabColumnGroupBody()
	adopt(g, g.header)
	adopt(g, g.titleHeader)
	adopt(g, g.summaryHeader)
	adopt(g, g.body)
	return g
}

func (g *CrosstabRowGroup) Header() *CrosstabHeader               { return g.header }
func (g *CrosstabRowGroup) TitleHeader() *CrosstabTitleHeader     { return g.titleHeader }
func (g *CrosstabRowGroup) SummaryHeader() *CrosstabSummaryHeader { return g.summaryHeader }
func (g *CrosstabRowGroup) Body() GroupBody                       { return g.body }

func (g *CrosstabRowGroup) SetHeader(header *CrosstabHeader) error {
	return setSlot(g, "set header", &g.header, header)
}

func (g *CrosstabRowGroup) SetTitleHeader(header *CrosstabTitleHeader) error {
	return setSlot(g, "set title header", &g.titleHeader, header)
}

func (g *CrosstabRowGroup) SetSummaryHeader(header *CrosstabSummaryHeader) error {
	return setSlot(g, "set summary header", &g.summaryHeader, header)
}

func (g *CrosstabRowGroup) SetBody(body CrosstabRowLevelBody) error {
	return setSlot(g, "set body", &g.body, body)
}

func (g *CrosstabRowGroup) SetGroupBody(body GroupBody) error {
	if err := checkBody(g, body); err != nil {
		return err
	}
	return g.SetBody(body.(CrosstabRowLevelBody))
}

func (g *CrosstabRowGroup) Field() string { return g.stringAttribute(CoreNamespace, AttrField) }

func (g *CrosstabRowGroup) SetField(field string) {
	g.SetAttribute(CoreNamespace, AttrField, nilIfEmpty(field))
}

func (g *CrosstabRowGroup) IsPrintSummary() bool {
	v, _ := g.boolAttribute(CrosstabNamespace, AttrPrintSummary)
	return v
}

func (g *CrosstabRowGroup) SetPrintSummary(enabled bool) {
	g.SetAttribute(CrosstabNamespace, AttrPrintSummary, enabled)
}

func (g *CrosstabRowGroup) IsGroupChange(row data.DataRow) bool {
	return groupChanged(row, g.Field())
}

func (g *CrosstabRowGroup) GeneratedName() string { return generatedGroupName(&g.Element) }

func (g *CrosstabRowGroup) ElementCount() int { return 4 }

func (g *CrosstabRowGroup) ElementAt(index int) ReportElement {
	return slotAt(index, g.titleHeader, g.header, g.body, g.summaryHeader)
}

func (g *CrosstabRowGroup) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, g.header):
		_ = g.SetHeader(NewCrosstabHeader())
	case sameElement(child, g.titleHeader):
		_ = g.SetTitleHeader(NewCrosstabTitleHeader())
	case sameElement(child, g.summaryHeader):
		_ = g.SetSummaryHeader(NewCrosstabSummaryHeader())
	case sameElement(child, g.body):
		_ = g.SetBody(NewCrosstabColumnGroupBody())
	}
}

func (g *CrosstabRowGroup) copyElement(m copyMode) ReportElement {
	n := &CrosstabRowGroup{}
	g.Element.copyInto(&n.Element, n, m)
	n.titleHeader = copyChild(n, m, g.titleHeader)
	n.header = copyChild(n, m, g.header)
	n.body = copyChild(n, m, g.body)
	n.summaryHeader = copyChild(n, m, g.summaryHeader)
	return n
}

func (g *CrosstabRowGroup) kind() structureKind { return kindCrosstabRowGroup }

// CrosstabColumnGroup is one level of the column dimension.
type CrosstabColumnGroup struct {
	Element
	header        *CrosstabHeader
	titleHeader   *CrosstabTitleHeader
	summaryHeader *CrosstabSummaryHeader
	body          CrosstabColumnLevelBody
}

// NewCrosstabColumnGroup creates a column group around an empty cell body.
func NewCrosstabColumnGroup() *CrosstabColumnGroup {
	g := &CrosstabColumnGroup{}
	g.init(g, CrosstabColumnGroupType)
	g.header = NewCrosstabHeader()
	g.titleHeader = NewCrosstabTitleHeader()
	g.summaryHeader = NewCrosstabSummaryHeader()
	g.body = NewCrosstabCellBody()
	adopt(g, g.header)
	adopt(g, g.titleHeader)
	adopt(g, g.summaryHeader)
	adopt(g, g.body)
	return g
}

func (g *CrosstabColumnGroup) Header() *CrosstabHeader               { return g.header }
func (g *CrosstabColumnGroup) TitleHeader() *CrosstabTitleHeader     { return g.titleHeader }
func (g *CrosstabColumnGroup) SummaryHeader() *CrosstabSummaryHeader { return g.summaryHeader }
func (g *CrosstabColumnGroup) Body() GroupBody                       { return g.body }

func (g *CrosstabColumnGroup) SetHeader(header *CrosstabHeader) error {
	return setSlot(g, "set header", &g.header, header)
}

func (g *CrosstabColumnGroup) SetTitleHeader(header *CrosstabTitleHeader) error {
	return setSlot(g, "set title header", &g.titleHeader, header)
}

func (g *CrosstabColumnGroup) SetSummaryHeader(header *CrosstabSummaryHeader) error {
	return setSlot(g, "set summary header", &g.summaryHeader, header)
}

func (g *CrosstabColumnGroup) SetBody(body CrosstabColumnLevelBody) error {
	return setSlot(g, "set body", &g.body, body)
}

func (g *CrosstabColumnGroup) SetGroupBody(body GroupBody) error {
	if err := checkBody(g, body); err != nil {
		return err
	}
	return g.SetBody(body.(CrosstabColumnLevelBody))
}

func (g *CrosstabColumnGroup) Field() string { return g.stringAttribute(CoreNamespace, AttrField) }

func (g *CrosstabColumnGroup) SetField(field string) {
	g.SetAttribute(CoreNamespace, AttrField, nilIfEmpty(field))
}

func (g *CrosstabColumnGroup) IsPrintSummary() bool {
	v, _ := g.boolAttribute(CrosstabNamespace, AttrPrintSummary)
	return v
}

func (g *CrosstabColumnGroup) SetPrintSummary(enabled bool) {
	g.SetAttribute(CrosstabNamespace, AttrPrintSummary, enabled)
}

func (g *CrosstabColumnGroup) IsGroupChange(row data.DataRow) bool {
	return groupChanged(row, g.Field())
}

func (g *CrosstabColumnGroup) GeneratedName() string { return generatedGroupName(&g.Element) }

func (g *CrosstabColumnGroup) ElementCount() int { return 4 }

func (g *CrosstabColumnGroup) ElementAt(index int) ReportElement {
	return slotAt(index, g.titleHeader, g.header, g.body, g.summaryHeader)
}

func (g *CrosstabColumnGroup) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, g.header):
		_ = g.SetHeader(NewCrosstabHeader())
	case sameElement(child, g.titleHeader):
		_ = g.SetTitleHeader(NewCrosstabTitleHeader())
	case sameElement(child, g.summaryHeader):
		_ = g.SetSummaryHeader(NewCrosstabSummaryHeader())
	case sameElement(child, g.body):
		_ = g.SetBody(NewCrosstabCellBody())
	}
}

func (g *CrosstabColumnGroup) copyElement(m copyMode) ReportElement {
	n := &CrosstabColumnGroup{}
	g.Element.copyInto(&n.Element, n, m)
	n.titleHeader = copyChild(n, m, g.titleHeader)
	n.header = copyChild(n, m, g.header)
	n.body = copyChild(n, m, g.body)
	n.summaryHeader = copyChild(n, m, g.summaryHeader)
	return n
}

func (g *CrosstabColumnGroup) kind() structureKind { return kindCrosstabColumnGroup }
