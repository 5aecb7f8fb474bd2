package report

import (
	"fmt"
	"slices"
)

// CrosstabOtherGroupBody holds a *CrosstabOtherGroup.
type CrosstabOtherGroupBody struct {
	Element
	group *CrosstabOtherGroup
}

func NewCrosstabOtherGroupBody() *CrosstabOtherGroupBody {
	b := &CrosstabOtherGroupBody{}
	b.init(b, CrosstabOtherGroupBodyType)
	b.group = NewCrosstabOtherGroup()
	adopt(b, b.group)
	return b
}

func (b *CrosstabOtherGroupBody) Group() *CrosstabOtherGroup { return b.group }
func (b *CrosstabOtherGroupBody) NestedGroup() Group         { return b.group }

func (b *CrosstabOtherGroupBody) SetGroup(g *CrosstabOtherGroup) error {
	return setSlot(b, "set group", &b.group, g)
}

func (b *CrosstabOtherGroupBody) SetNestedGroup(g Group) error {
	if err := checkNestedGroup(b, g); err != nil {
		return err
	}
	return b.SetGroup(g.(*CrosstabOtherGroup))
}

func (b *CrosstabOtherGroupBody) ElementCount() int { return 1 }

func (b *CrosstabOtherGroupBody) ElementAt(index int) ReportElement {
	return slotAt(index, b.group)
}

func (b *CrosstabOtherGroupBody) RemoveElement(child ReportElement) {
	if sameElement(child, b.group) {
		_ = b.SetGroup(NewCrosstabOtherGroup())
	}
}

func (b *CrosstabOtherGroupBody) copyElement(m copyMode) ReportElement {
	n := &CrosstabOtherGroupBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.group = copyChild(n, m, b.group)
	return n
}

func (b *CrosstabOtherGroupBody) kind() structureKind { return kindCrosstabOtherGroupBody }
func (b *CrosstabOtherGroupBody) otherLevelBody()     {}

// CrosstabRowGroupBody holds a *CrosstabRowGroup.
type CrosstabRowGroupBody struct {
	Element
	group *CrosstabRowGroup
}

func NewCrosstabRowGroupBody() *CrosstabRowGroupBody {
	b := &CrosstabRowGroupBody{}
	b.init(b, CrosstabRowGroupBodyType)
	b.group = NewCrosstabRowGroup()
	adopt(b, b.group)
	return b
}

func (b *CrosstabRowGroupBody) Group() *CrosstabRowGroup { return b.group }
func (b *CrosstabRowGroupBody) NestedGroup() Group       { return b.group }

func (b *CrosstabRowGroupBody) SetGroup(g *CrosstabRowGroup) error {
	return setSlot(b, "set group", &b.group, g)
}

func (b *CrosstabRowGroupBody) SetNestedGroup(g Group) error {
	if err := checkNestedGroup(b, g); err != nil {
		return err
	}
	return b.SetGroup(g.(*CrosstabRowGroup))
}

func (b *CrosstabRowGroupBody) ElementCount() int { return 1 }

func (b *CrosstabRowGroupBody) ElementAt(index int) ReportElement {
	return slotAt(index, b.group)
}

func (b *CrosstabRowGroupBody) RemoveElement(child ReportElement) {
	if sameElement(child, b.group) {
		_ = b.SetGroup(NewCrosstabRowGroup())
	}
}

func (b *CrosstabRowGroupBody) copyElement(m copyMode) ReportElement {
	n := &CrosstabRowGroupBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.group = copyChild(n, m, b.group)
	return n
}

func (b *CrosstabRowGroupBody) kind() structureKind { return kindCrosstabRowGroupBody }
func (b *CrosstabRowGroupBody) otherLevelBody()     {}
func (b *CrosstabRowGroupBody) rowLevelBody()       {}

// CrosstabColumnGroupBody holds a *CrosstabColumnGroup.
type CrosstabColumnGroupBody struct {
	Element
	group *CrosstabColumnGroup
}

func NewCrosstabColumnGroupBody() *CrosstabColumnGroupBody {
	b := &CrosstabColumnGroupBody{}
	b.init(b, CrosstabColumnGroupBodyType)
	b.group = NewCrosstabColumnGroup()
	adopt(b, b.group)
	return b
}

func (b *CrosstabColumnGroupBody) Group() *CrosstabColumnGroup { return b.group }
func (b *CrosstabColumnGroupBody) NestedGroup() Group          { return b.group }

func (b *CrosstabColumnGroupBody) SetGroup(g *CrosstabColumnGroup) error {
	return setSlot(b, "set group", &b.group, g)
}

func (b *CrosstabColumnGroupBody) SetNestedGroup(g Group) error {
	if err := checkNestedGroup(b, g); err != nil {
		return err
	}
	return b.SetGroup(g.(*CrosstabColumnGroup))
}

func (b *CrosstabColumnGroupBody) ElementCount() int { return 1 }

func (b *CrosstabColumnGroupBody) ElementAt(index int) ReportElement {
	return slotAt(index, b.group)
}

func (b *CrosstabColumnGroupBody) RemoveElement(child ReportElement) {
	if sameElement(child, b.group) {
		_ = b.SetGroup(NewCrosstabColumnGroup())
	}
}

func (b *CrosstabColumnGroupBody) copyElement(m copyMode) ReportElement {
	n := &CrosstabColumnGroupBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.group = copyChild(n, m, b.group)
	return n
}

func (b *CrosstabColumnGroupBody) kind() structureKind { return kindCrosstabColumnGroupBody }
func (b *CrosstabColumnGroupBody) rowLevelBody()       {}
func (b *CrosstabColumnGroupBody) columnLevelBody()    {}

// CrosstabCellBody is the innermost body of a crosstab. It holds a details
// header followed by the cells; cells are addressed by their row and column
// fields.
type CrosstabCellBody struct {
	Element
	header *DetailsHeader
	cells  []*CrosstabCell
}

func NewCrosstabCellBody() *CrosstabCellBody {
	b := &CrosstabCellBody{}
	b.init(b, CrosstabCellBodyType)
	b.header = NewDetailsHeader()
	adopt(b, b.header)
	return b
}

func (b *CrosstabCellBody) Header() *DetailsHeader { return b.header }

func (b *CrosstabCellBody) SetHeader(header *DetailsHeader) error {
	return setSlot(b, "set header", &b.header, header)
}

func (b *CrosstabCellBody) CellCount() int { return len(b.cells) }

// Cell returns the cell at index, or nil.
func (b *CrosstabCellBody) Cell(index int) *CrosstabCell {
	if index < 0 || index >= len(b.cells) {
		return nil
	}
	return b.cells[index]
}

// FindCell returns the cell for the given row and column fields, or nil.
func (b *CrosstabCellBody) FindCell(rowField, columnField string) *CrosstabCell {
	for _, c := range b.cells {
		if c.RowField() == rowField && c.ColumnField() == columnField {
			return c
		}
	}
	return nil
}

// AddCell appends cell. A cell that already belongs to this body stays where it is.
func (b *CrosstabCellBody) AddCell(cell *CrosstabCell) error {
	return b.AddCellAt(len(b.cells), cell)
}

func (b *CrosstabCellBody) AddCellAt(index int, cell *CrosstabCell) error {
	const op = "add cell"
	if index < 0 || index > len(b.cells) {
		return newStructureError(op, b, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfBounds, index, len(b.cells)))
	}
	if cell == nil {
		return newStructureError(op, b, ErrNilElement)
	}
	if err := validateLooping(b, cell); err != nil {
		return newStructureError(op, b, err)
	}
	if p := cell.Parent(); p != nil && p.AsElement() == &b.Element {
		return nil
	}
	detachFromParent(cell)
	b.cells = append(b.cells, nil)
	copy(b.cells[index+1:], b.cells[index:])
	b.cells[index] = cell
	adopt(b, cell)
	b.NotifyNodeChildAdded(cell)
	return nil
}

func (b *CrosstabCellBody) RemoveCell(index int) error {
	if index < 0 || index >= len(b.cells) {
		return newStructureError("remove cell", b, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, len(b.cells)))
	}
	old := b.cells[index]
	b.cells = slices.Delete(b.cells, index, index+1)
	release(old)
	b.NotifyNodeChildRemoved(old)
	return nil
}

func (b *CrosstabCellBody) ElementCount() int { return len(b.cells) + 1 }

func (b *CrosstabCellBody) ElementAt(index int) ReportElement {
	if index == 0 {
		return b.header
	}
	if c := b.Cell(index - 1); c != nil {
		return c
	}
	return nil
}

func (b *CrosstabCellBody) RemoveElement(child ReportElement) {
	if sameElement(child, b.header) {
		_ = b.SetHeader(NewDetailsHeader())
		return
	}
	for i, c := range b.cells {
		if sameElement(child, c) {
			_ = b.RemoveCell(i)
			return
		}
	}
}

func (b *CrosstabCellBody) copyElement(m copyMode) ReportElement {
	n := &CrosstabCellBody{}
	b.Element.copyInto(&n.Element, n, m)
	n.header = copyChild(n, m, b.header)
	if len(b.cells) > 0 {
		n.cells = make([]*CrosstabCell, len(b.cells))
		for i, c := range b.cells {
			n.cells[i] = copyChild(n, m, c)
		}
	}
	return n
}

func (b *CrosstabCellBody) kind() structureKind { return kindCrosstabCellBody }
func (b *CrosstabCellBody) columnLevelBody()    {}
