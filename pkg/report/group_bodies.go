package report

// GroupDataBody is the innermost body of a relational group hierarchy. It
// holds the bands printed for the data rows.
type GroupDataBody struct {
	Element
	itemBand      *ItemBand
	noDataBand    *NoDataBand
	detailsHeader *DetailsHeader
	detailsFooter *DetailsFooter
}

func NewGroupDataBody() *GroupDataBody {
	b := &GroupDataBody{}
	b.init(b, GroupDataBodyType)
	b.detailsHeader = NewDetailsHeader()
	b.noDataBand = NewNoDataBand()
	b.itemBand = NewItemBand()
	b.detailsFooter = NewDetailsFooter()
	adopt(b, b.detailsHeader)
	adopt(b, b.noDataBand)
	adopt(b, b.itemBand)
	adopt(b, b.detailsFooter)
	return b
}

func (b *GroupDataBody) ItemBand() *ItemBand           { return b.itemBand }
func (b *GroupDataBody) NoDataBand() *NoDataBand       { return b.noDataBand }
func (b *GroupDataBody) DetailsHeader() *DetailsHeader { return b.detailsHeader }
func (b *GroupDataBody) DetailsFooter() *DetailsFooter { return b.detailsFooter }

func (b *GroupDataBody) SetItemBand(band *ItemBand) error {
	return setSlot(b, "set item band", &b.itemBand, band)
}

func (b *GroupDataBody) SetNoDataBand(band *NoDataBand) error {
	return setSlot(b, "set no-data band", &b.noDataBand, band)
}

func (b *GroupDataBody) SetDetailsHeader(band *DetailsHeader) error {
	return setSlot(b, "set details header", &b.detailsHeader, band)
}

func (b *GroupDataBody) SetDetailsFooter(band *DetailsFooter) error {
	return setSlot(b, "set details footer", &b.detailsFooter, band)
}

func (b *GroupDataBody) ElementCount() int { return 4 }

func (b *GroupDataBody) ElementAt(index int) ReportElement {
	return slotAt(index, b.detailsHeader, b.noDataBand, b.itemBand, b.detailsFooter)
}

func (b *GroupDataBody) RemoveElement(child ReportElement) {
	switch {
	case sameElement(child, b.itemBand):
		_ = b.SetItemBand(NewItemBand())
	case sameElement(child, b.noDataBand):
		_ = b.SetNoDataBand(NewNoDataBand())
	case sameElement(child, b.detailsHeader):
		_ = b.SetDetailsHeader(NewDetailsHeader())
	case sameElement(child, b.detailsFooter):
		_ = b.SetDetailsFooter(NewDetailsFooter())
	}
}

func (b *GroupDataBody) copyElement(m copyMode) ReportElement {
	n := &GroupDataBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.detailsHeader = copyChild(n, m, b.detailsHeader)
	n.noDataBand = copyChild(n, m, b.noDataBand)
	n.itemBand = copyChild(n, m, b.itemBand)
	n.detailsFooter = copyChild(n, m, b.detailsFooter)
	return n
}

func (b *GroupDataBody) kind() structureKind { return kindGroupDataBody }
func (b *GroupDataBody) relationalBody()     {}

// SubGroupBody nests another top-level group inside a relational group.
type SubGroupBody struct {
	Element
	group TopLevelGroup
}

// NewSubGroupBody creates a body holding a fresh relational group.
func NewSubGroupBody() *SubGroupBody {
	return NewSubGroupBodyWith(NewRelationalGroup())
}

// NewSubGroupBodyWith creates a body holding g. A nil g yields a fresh
// relational group.
func NewSubGroupBodyWith(g TopLevelGroup) *SubGroupBody {
	b := &SubGroupBody{}
	b.init(b, SubGroupBodyType)
	if isNilElement(g) {
		g = NewRelationalGroup()
	}
	detachFromParent(g)
	b.group = g
	adopt(b, g)
	return b
}

func (b *SubGroupBody) Group() TopLevelGroup { return b.group }
func (b *SubGroupBody) NestedGroup() Group   { return b.group }

func (b *SubGroupBody) SetGroup(g TopLevelGroup) error {
	return setSlot(b, "set group", &b.group, g)
}

func (b *SubGroupBody) SetNestedGroup(g Group) error {
	if err := checkNestedGroup(b, g); err != nil {
		return err
	}
	return b.SetGroup(g.(TopLevelGroup))
}

func (b *SubGroupBody) ElementCount() int { return 1 }

func (b *SubGroupBody) ElementAt(index int) ReportElement {
	return slotAt(index, b.group)
}

func (b *SubGroupBody) RemoveElement(child ReportElement) {
	if sameElement(child, b.group) {
		_ = b.SetGroup(NewRelationalGroup())
	}
}

func (b *SubGroupBody) copyElement(m copyMode) ReportElement {
	n := &SubGroupBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.group = copyChild(n, m, b.group)
	return n
}

func (b *SubGroupBody) kind() structureKind { return kindSubGroupBody }
func (b *SubGroupBody) relationalBody()     {}
