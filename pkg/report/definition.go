package report

import (
	"fmt"
	"slices"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// ReportDefinition is the root of a report tree: a *MasterReport or a
// *SubReport.
type ReportDefinition interface {
	Section
	PageHeader() *PageHeader
	ReportHeader() *ReportHeader
	RootGroup() TopLevelGroup
	ReportFooter() *ReportFooter
	PageFooter() *PageFooter
	Watermark() *Watermark

	GroupCount() int
	Group(index int) Group
	GroupByName(name string) Group

	Query() string
	QueryLimit() int
	QueryTimeout() int
	UserQueryLimit() int
	IsQueryLimitInherited() bool

	Expressions() *ExpressionCollection
	DataSchemaDefinition() *DataSchemaDefinition
	// DataFactory returns the definition's own data factory, which may be
	// nil for sub-reports.
	DataFactory() data.DataFactory
	AddChangeListener(l ChangeListener) (remove func())

	definition() *reportDefinition
}

type listenerEntry struct {
	id       int
	listener ChangeListener
}

// reportDefinition holds the state shared by master and sub-reports: six
// fixed slots, the report expressions and the data schema.
type reportDefinition struct {
	Element
	pageHeader   *PageHeader
	reportHeader *ReportHeader
	rootGroup    TopLevelGroup
	reportFooter *ReportFooter
	pageFooter   *PageFooter
	watermark    *Watermark

	expressions *ExpressionCollection
	dataSchema  *DataSchemaDefinition

	listeners      []listenerEntry
	nextListenerID int
}

func (d *reportDefinition) initDefinition(self ReportDefinition, t *ElementType) {
	d.init(self, t)
	d.pageHeader = NewPageHeader()
	d.reportHeader = NewReportHeader()
	d.rootGroup = NewRelationalGroup()
	d.reportFooter = NewReportFooter()
	d.pageFooter = NewPageFooter()
	d.watermark = NewWatermark()
	for _, c := range d.slots() {
		adopt(self, c)
	}
	d.expressions = NewExpressionCollection()
	d.dataSchema = NewDataSchemaDefinition()
}

func (d *reportDefinition) copyDefinitionInto(dst *reportDefinition, self ReportDefinition, m copyMode) {
	d.Element.copyInto(&dst.Element, self, m)
	dst.pageHeader = copyChild(self, m, d.pageHeader)
	dst.reportHeader = copyChild(self, m, d.reportHeader)
	dst.rootGroup = copyChild(self, m, d.rootGroup)
	dst.reportFooter = copyChild(self, m, d.reportFooter)
	dst.pageFooter = copyChild(self, m, d.pageFooter)
	dst.watermark = copyChild(self, m, d.watermark)
	dst.expressions = d.expressions.Clone()
	dst.dataSchema = d.dataSchema.Clone()
}

func (d *reportDefinition) definition() *reportDefinition { return d }

func (d *reportDefinition) section() Section { return d.self.(Section) }

func (d *reportDefinition) slots() []ReportElement {
	return []ReportElement{d.pageHeader, d.reportHeader, d.rootGroup, d.reportFooter, d.pageFooter, d.watermark}
}

func (d *reportDefinition) PageHeader() *PageHeader     { return d.pageHeader }
func (d *reportDefinition) ReportHeader() *ReportHeader { return d.reportHeader }
func (d *reportDefinition) RootGroup() TopLevelGroup    { return d.rootGroup }
func (d *reportDefinition) ReportFooter() *ReportFooter { return d.reportFooter }
func (d *reportDefinition) PageFooter() *PageFooter     { return d.pageFooter }
func (d *reportDefinition) Watermark() *Watermark       { return d.watermark }

func (d *reportDefinition) SetPageHeader(band *PageHeader) error {
	return setSlot(d.section(), "set page header", &d.pageHeader, band)
}

func (d *reportDefinition) SetReportHeader(band *ReportHeader) error {
	return setSlot(d.section(), "set report header", &d.reportHeader, band)
}

// SetRootGroup replaces the root group and every group nested in it.
func (d *reportDefinition) SetRootGroup(g TopLevelGroup) error {
	return setSlot(d.section(), "set root group", &d.rootGroup, g)
}

func (d *reportDefinition) SetReportFooter(band *ReportFooter) error {
	return setSlot(d.section(), "set report footer", &d.reportFooter, band)
}

func (d *reportDefinition) SetPageFooter(band *PageFooter) error {
	return setSlot(d.section(), "set page footer", &d.pageFooter, band)
}

func (d *reportDefinition) SetWatermark(band *Watermark) error {
	return setSlot(d.section(), "set watermark", &d.watermark, band)
}

func (d *reportDefinition) ElementCount() int { return 6 }

func (d *reportDefinition) ElementAt(index int) ReportElement {
	return slotAt(index, d.slots()...)
}

func (d *reportDefinition) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, d.pageHeader):
		_ = d.SetPageHeader(NewPageHeader())
	case sameElement(child, d.reportHeader):
		_ = d.SetReportHeader(NewReportHeader())
	case sameElement(child, d.rootGroup):
		_ = d.SetRootGroup(NewRelationalGroup())
	case sameElement(child, d.reportFooter):
		_ = d.SetReportFooter(NewReportFooter())
	case sameElement(child, d.pageFooter):
		_ = d.SetPageFooter(NewPageFooter())
	case sameElement(child, d.watermark):
		_ = d.SetWatermark(NewWatermark())
	}
}

// Groups returns every group of the report, root group first, following
// nested group holders.
func (d *reportDefinition) Groups() []Group {
	return NestedGroups(d.rootGroup)
}

// GroupCount returns the number of groups. It is never less than one.
func (d *reportDefinition) GroupCount() int { return len(d.Groups()) }

// Group returns the group at index; index 0 is the root group. It returns
// nil when index is out of range.
func (d *reportDefinition) Group(index int) Group {
	groups := d.Groups()
	if index < 0 || index >= len(groups) {
		return nil
	}
	return groups[index]
}

// GroupByName returns the first group whose name or generated name matches.
func (d *reportDefinition) GroupByName(name string) Group {
	for _, g := range d.Groups() {
		if g.Name() == name || g.GeneratedName() == name {
			return g
		}
	}
	return nil
}

// innermostRelationalGroup returns the deepest relational group reachable
// through sub-group bodies, or nil when the root group is a crosstab.
func (d *reportDefinition) innermostRelationalGroup() *RelationalGroup {
	var last *RelationalGroup
	var g Group = d.rootGroup
	for {
		rg, ok := g.(*RelationalGroup)
		if !ok {
			return last
		}
		last = rg
		sub, ok := rg.body.(*SubGroupBody)
		if !ok {
			return last
		}
		g = sub.group
	}
}

// AddGroup inserts g below the innermost relational group.
//
// A relational group takes over the innermost group's body and is nested in
// its place, so existing bands move one level down. When the root group is
// a crosstab, the new group becomes the root and wraps the crosstab. A
// crosstab group replaces the innermost data body; a report holds at most
// one crosstab.
func (d *reportDefinition) AddGroup(g TopLevelGroup) error {
	const op = "add group"
	self := d.section()
	if isNilElement(g) {
		return newStructureError(op, self, ErrNilElement)
	}
	last := d.innermostRelationalGroup()
	switch grp := g.(type) {
	case *RelationalGroup:
		if last == nil {
			if err := validateLooping(self, grp); err != nil {
				return newStructureError(op, self, err)
			}
			crosstab := d.rootGroup
			if err := d.SetRootGroup(grp); err != nil {
				return err
			}
			if err := grp.SetBody(NewSubGroupBodyWith(crosstab)); err != nil {
				return err
			}
			break
		}
		if err := validateLooping(last, grp); err != nil {
			return newStructureError(op, self, err)
		}
		body := last.body
		detachFromParent(grp)
		if err := grp.SetBody(body); err != nil {
			return err
		}
		if err := last.SetBody(NewSubGroupBodyWith(grp)); err != nil {
			return err
		}
	case *CrosstabGroup:
		if last == nil {
			return newStructureError(op, self, fmt.Errorf("%w: report already holds a crosstab", ErrIllegalGroup))
		}
		if _, nested := last.body.(*SubGroupBody); nested {
			return newStructureError(op, self, fmt.Errorf("%w: report already holds a crosstab", ErrIllegalGroup))
		}
		if err := validateLooping(last, grp); err != nil {
			return newStructureError(op, self, err)
		}
		if err := last.SetBody(NewSubGroupBodyWith(grp)); err != nil {
			return err
		}
	default:
		return newStructureError(op, self, fmt.Errorf("%w: %s", ErrIllegalGroup, g.kind()))
	}
	WithFields(Fields{"report": describe(self), "group": describe(g)}).Debug("group added, %d groups", d.GroupCount())
	return nil
}

// RemoveGroup removes g from the group chain. The bands below g move up one
// level and the bands of g itself are discarded. Removing the only group
// leaves a fresh root group that keeps the data body.
func (d *reportDefinition) RemoveGroup(g *RelationalGroup) error {
	const op = "remove group"
	self := d.section()
	if g == nil {
		return newStructureError(op, self, ErrNilElement)
	}
	if sameElement(d.rootGroup, g) {
		switch body := g.body.(type) {
		case *SubGroupBody:
			return d.SetRootGroup(body.group)
		default:
			replacement := NewRelationalGroup()
			if err := replacement.SetBody(body); err != nil {
				return err
			}
			return d.SetRootGroup(replacement)
		}
	}
	found := false
	for _, c := range d.Groups() {
		if sameElement(c, g) {
			found = true
			break
		}
	}
	if !found {
		return newStructureError(op, self, fmt.Errorf("%w: %s", ErrGroupNotFound, describe(g)))
	}
	holder, ok := g.Parent().(*SubGroupBody)
	if !ok {
		return newStructureError(op, self, fmt.Errorf("%w: %s is not nested in a sub-group body", ErrGroupNotFound, describe(g)))
	}
	outer, ok := holder.Parent().(*RelationalGroup)
	if !ok {
		return newStructureError(op, self, fmt.Errorf("%w: %s has no enclosing relational group", ErrGroupNotFound, describe(g)))
	}
	if err := outer.SetBody(g.body); err != nil {
		return err
	}
	WithFields(Fields{"report": describe(self), "group": describe(g)}).Debug("group removed, %d groups", d.GroupCount())
	return nil
}

// innermostDataBody returns the data body of the innermost relational
// group, or nil when it holds a crosstab.
func (d *reportDefinition) innermostDataBody() *GroupDataBody {
	if last := d.innermostRelationalGroup(); last != nil {
		return last.DataBody()
	}
	return nil
}

// ItemBand returns the item band of the innermost data body, or nil.
func (d *reportDefinition) ItemBand() *ItemBand {
	if b := d.innermostDataBody(); b != nil {
		return b.ItemBand()
	}
	return nil
}

// NoDataBand returns the no-data band of the innermost data body, or nil.
func (d *reportDefinition) NoDataBand() *NoDataBand {
	if b := d.innermostDataBody(); b != nil {
		return b.NoDataBand()
	}
	return nil
}

func (d *reportDefinition) DetailsHeader() *DetailsHeader {
	if b := d.innermostDataBody(); b != nil {
		return b.DetailsHeader()
	}
	return nil
}

func (d *reportDefinition) DetailsFooter() *DetailsFooter {
	if b := d.innermostDataBody(); b != nil {
		return b.DetailsFooter()
	}
	return nil
}

// Query returns the name of the query feeding the report.
func (d *reportDefinition) Query() string {
	return d.stringAttribute(CoreNamespace, AttrQuery)
}

func (d *reportDefinition) SetQuery(query string) {
	d.SetAttribute(CoreNamespace, AttrQuery, nilIfEmpty(query))
}

// QueryLimit returns the maximum number of rows to query; -1 means no limit.
func (d *reportDefinition) QueryLimit() int {
	return d.intAttribute(CoreNamespace, AttrQueryLimit, -1)
}

func (d *reportDefinition) SetQueryLimit(limit int) {
	d.SetAttribute(CoreNamespace, AttrQueryLimit, limit)
}

// QueryTimeout returns the query timeout in seconds; 0 means no timeout.
func (d *reportDefinition) QueryTimeout() int {
	return d.intAttribute(CoreNamespace, AttrQueryTimeout, 0)
}

func (d *reportDefinition) SetQueryTimeout(seconds int) {
	d.SetAttribute(CoreNamespace, AttrQueryTimeout, seconds)
}

// UserQueryLimit returns the row limit chosen by the report user; 0 means
// none was chosen.
func (d *reportDefinition) UserQueryLimit() int {
	return d.intAttribute(CoreNamespace, AttrUserQueryLimit, 0)
}

func (d *reportDefinition) SetUserQueryLimit(limit int) {
	d.SetAttribute(CoreNamespace, AttrUserQueryLimit, limit)
}

// IsQueryLimitInherited reports whether sub-reports use the master's query
// limit. A locally set flag wins; otherwise the master report's flag
// applies; otherwise false.
func (d *reportDefinition) IsQueryLimitInherited() bool {
	if v, ok := d.boolAttribute(CoreNamespace, AttrQueryLimitInherited); ok {
		return v
	}
	if m := d.MasterReport(); m != nil && &m.reportDefinition != d {
		v, _ := m.boolAttribute(CoreNamespace, AttrQueryLimitInherited)
		return v
	}
	return false
}

func (d *reportDefinition) SetQueryLimitInherited(inherited bool) {
	d.SetAttribute(CoreNamespace, AttrQueryLimitInherited, inherited)
}

// ClearQueryLimitInherited removes the local flag so the master's applies.
func (d *reportDefinition) ClearQueryLimitInherited() {
	d.SetAttribute(CoreNamespace, AttrQueryLimitInherited, nil)
}

// Expressions returns the live collection of report expressions. Use
// AddExpression and RemoveExpression to modify it with change tracking.
func (d *reportDefinition) Expressions() *ExpressionCollection { return d.expressions }

// SetExpressions replaces the report expressions. A nil collection clears them.
func (d *reportDefinition) SetExpressions(c *ExpressionCollection) {
	if c == nil {
		c = NewExpressionCollection()
	}
	d.expressions = c
	d.NotifyNodePropertiesChanged(c)
}

func (d *reportDefinition) AddExpression(e Expression) error {
	if err := d.expressions.Add(e); err != nil {
		return err
	}
	d.NotifyNodePropertiesChanged(d.expressions)
	return nil
}

func (d *reportDefinition) RemoveExpression(e Expression) bool {
	if !d.expressions.Remove(e) {
		return false
	}
	d.NotifyNodePropertiesChanged(d.expressions)
	return true
}

func (d *reportDefinition) DataSchemaDefinition() *DataSchemaDefinition { return d.dataSchema }

func (d *reportDefinition) SetDataSchemaDefinition(schema *DataSchemaDefinition) {
	if schema == nil {
		schema = NewDataSchemaDefinition()
	}
	d.dataSchema = schema
	d.NotifyNodePropertiesChanged(schema)
}

// StructureFunctions returns a copy of the structure function list.
func (d *reportDefinition) StructureFunctions() []StructureFunction {
	l, _ := d.Attribute(InternalNamespace, AttrStructureFunctions).(structureFunctionList)
	return append([]StructureFunction(nil), l...)
}

func (d *reportDefinition) StructureFunctionCount() int {
	l, _ := d.Attribute(InternalNamespace, AttrStructureFunctions).(structureFunctionList)
	return len(l)
}

func (d *reportDefinition) AddStructureFunction(f StructureFunction) error {
	if f == nil {
		return newStructureError("add structure function", d.self, ErrNilElement)
	}
	l := structureFunctionList(append(d.StructureFunctions(), f))
	d.SetAttribute(InternalNamespace, AttrStructureFunctions, l)
	return nil
}

func (d *reportDefinition) RemoveStructureFunction(f StructureFunction) bool {
	current := d.StructureFunctions()
	for i, x := range current {
		if x == f {
			l := structureFunctionList(slices.Delete(current, i, i+1))
			if len(l) == 0 {
				d.SetAttribute(InternalNamespace, AttrStructureFunctions, nil)
			} else {
				d.SetAttribute(InternalNamespace, AttrStructureFunctions, l)
			}
			return true
		}
	}
	return false
}

// PreProcessors returns a copy of the pre-processor list.
func (d *reportDefinition) PreProcessors() []ReportPreProcessor {
	l, _ := d.Attribute(InternalNamespace, AttrPreProcessors).(preProcessorList)
	return append([]ReportPreProcessor(nil), l...)
}

func (d *reportDefinition) AddPreProcessor(p ReportPreProcessor) error {
	if p == nil {
		return newStructureError("add pre-processor", d.self, ErrNilElement)
	}
	l := preProcessorList(append(d.PreProcessors(), p))
	d.SetAttribute(InternalNamespace, AttrPreProcessors, l)
	return nil
}

func (d *reportDefinition) RemovePreProcessor(p ReportPreProcessor) bool {
	current := d.PreProcessors()
	for i, x := range current {
		if x == p {
			l := preProcessorList(slices.Delete(current, i, i+1))
			if len(l) == 0 {
				d.SetAttribute(InternalNamespace, AttrPreProcessors, nil)
			} else {
				d.SetAttribute(InternalNamespace, AttrPreProcessors, l)
			}
			return true
		}
	}
	return false
}

// ApplyPreProcessors runs the pre-processors in order against the
// definition and stops at the first failure. Run it on a derived copy, not
// on a shared template.
func (d *reportDefinition) ApplyPreProcessors() error {
	def := d.self.(ReportDefinition)
	for i, p := range d.PreProcessors() {
		if err := p.PreProcess(def); err != nil {
			return WithContext(err, "apply pre-processor", map[string]interface{}{
				"index":  i,
				"report": describe(def),
			})
		}
	}
	return nil
}

// AddChangeListener registers l for every change event reaching this
// definition and returns a function that unregisters it.
func (d *reportDefinition) AddChangeListener(l ChangeListener) (remove func()) {
	id := d.nextListenerID
	d.nextListenerID++
	d.listeners = append(d.listeners, listenerEntry{id: id, listener: l})
	return func() {
		for i, e := range d.listeners {
			if e.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

func (d *reportDefinition) fireModelChanged(ev ChangeEvent) {
	if len(d.listeners) == 0 {
		return
	}
	for _, e := range append([]listenerEntry(nil), d.listeners...) {
		e.listener.NodeChanged(ev)
	}
}
