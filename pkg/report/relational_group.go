package report

import "github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"

// RelationalGroup groups rows by a list of fields. It owns a header, a body
// and a footer; the body is a *GroupDataBody or a *SubGroupBody.
type RelationalGroup struct {
	Element
	header *GroupHeader
	body   RelationalBody
	footer *GroupFooter
}

// NewRelationalGroup creates a group with an empty header, footer and data body.
func NewRelationalGroup() *RelationalGroup {
	g := &RelationalGroup{}
	g.init(g, RelationalGroupType)
	g.header = NewGroupHeader()
	g.body = NewGroupDataBody()
	g.footer = NewGroupFooter()
	adopt(g, g.header)
	adopt(g, g.body)
	adopt(g, g.footer)
	return g
}

func (g *RelationalGroup) Header() *GroupHeader { return g.header }
func (g *RelationalGroup) Footer() *GroupFooter { return g.footer }
func (g *RelationalGroup) Body() GroupBody      { return g.body }

func (g *RelationalGroup) SetHeader(header *GroupHeader) error {
	return setSlot(g, "set header", &g.header, header)
}

func (g *RelationalGroup) SetFooter(footer *GroupFooter) error {
	return setSlot(g, "set footer", &g.footer, footer)
}

func (g *RelationalGroup) SetBody(body RelationalBody) error {
	return setSlot(g, "set body", &g.body, body)
}

func (g *RelationalGroup) SetGroupBody(body GroupBody) error {
	if err := checkBody(g, body); err != nil {
		return err
	}
	return g.SetBody(body.(RelationalBody))
}

// DataBody returns the body when it is a *GroupDataBody.
func (g *RelationalGroup) DataBody() *GroupDataBody {
	b, _ := g.body.(*GroupDataBody)
	return b
}

// Fields returns the grouping fields in order.
func (g *RelationalGroup) Fields() []string {
	return g.stringsAttribute(CoreNamespace, AttrGroupFields)
}

func (g *RelationalGroup) SetFields(fields []string) {
	g.setStringsAttribute(CoreNamespace, AttrGroupFields, fields)
}

func (g *RelationalGroup) AddField(field string) {
	g.SetFields(append(g.Fields(), field))
}

func (g *RelationalGroup) ClearFields() {
	g.SetFields(nil)
}

// IsGroupChange reports whether any grouping field changed in row. A group
// without fields never changes.
func (g *RelationalGroup) IsGroupChange(row data.DataRow) bool {
	return groupChanged(row, g.Fields()...)
}

func (g *RelationalGroup) GeneratedName() string { return generatedGroupName(&g.Element) }

func (g *RelationalGroup) ElementCount() int { return 3 }

func (g *RelationalGroup) ElementAt(index int) ReportElement {
	return slotAt(index, g.header, g.body, g.footer)
}

func (g *RelationalGroup) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, g.header):
		_ = g.SetHeader(NewGroupHeader())
	case sameElement(child, g.body):
		_ = g.SetBody(NewGroupDataBody())
	case sameElement(child, g.footer):
		_ = g.SetFooter(NewGroupFooter())
	}
}

func (g *RelationalGroup) copyElement(m copyMode) ReportElement {
	n := &RelationalGroup{}
	g.Element.copyInto(&n.Element, n, m)
	n.header = copyChild(n, m, g.header)
	n.body = copyChild(n, m, g.body)
	n.footer = copyChild(n, m, g.footer)
	return n
}

func (g *RelationalGroup) kind() structureKind { return kindRelationalGroup }
func (g *RelationalGroup) topLevel()           {}
