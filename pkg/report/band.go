package report

import (
	"fmt"
	"slices"
)

// Band is a section holding an ordered list of children.
type Band struct {
	Element
	elements []ReportElement
	// cache is the slice handed out by Elements; rebuilt after structural changes.
	cache []ReportElement
}

// NewBand creates an empty band using the canvas layout.
func NewBand() *Band {
	b := &Band{}
	b.init(b, BandType)
	return b
}

// NewBandWithLayout creates an empty band with the given layout.
func NewBandWithLayout(layout string) *Band {
	b := NewBand()
	b.SetLayout(layout)
	return b
}

func (b *Band) Layout() string {
	s, _ := b.style.StyleProperty(StyleLayout).(string)
	return s
}

func (b *Band) SetLayout(layout string) {
	b.style.SetStyleProperty(StyleLayout, layout)
}

func (b *Band) ElementCount() int { return len(b.elements) }

func (b *Band) ElementAt(index int) ReportElement {
	if index < 0 || index >= len(b.elements) {
		return nil
	}
	return b.elements[index]
}

// Elements returns the children in order. The returned slice is shared and
// must not be modified.
func (b *Band) Elements() []ReportElement {
	if b.cache == nil {
		b.cache = append(make([]ReportElement, 0, len(b.elements)), b.elements...)
	}
	return b.cache
}

// IndexOf returns the position of child, or -1.
func (b *Band) IndexOf(child ReportElement) int {
	if isNilElement(child) {
		return -1
	}
	target := child.AsElement()
	for i, e := range b.elements {
		if e.AsElement() == target {
			return i
		}
	}
	return -1
}

// ElementByName returns the first direct child with the given name.
func (b *Band) ElementByName(name string) ReportElement {
	for _, e := range b.elements {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// AddElement appends child. A child that already belongs to this band stays
// where it is.
func (b *Band) AddElement(child ReportElement) error {
	return b.AddElementAt(len(b.elements), child)
}

// AddElementAt inserts child at position, which may equal ElementCount.
func (b *Band) AddElementAt(position int, child ReportElement) error {
	const op = "add element"
	if position < 0 || position > len(b.elements) {
		return newStructureError(op, b.self, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfBounds, position, len(b.elements)))
	}
	if isNilElement(child) {
		return newStructureError(op, b.self, ErrNilElement)
	}
	self := b.self.(Section)
	if err := validateLooping(self, child); err != nil {
		return newStructureError(op, b.self, err)
	}
	if p := child.Parent(); p != nil && p.AsElement() == &b.Element {
		return nil
	}
	detachFromParent(child)
	b.elements = append(b.elements, nil)
	copy(b.elements[position+1:], b.elements[position:])
	b.elements[position] = child
	b.cache = nil
	adopt(self, child)
	b.NotifyNodeChildAdded(child)
	return nil
}

// AddElements appends every child in order and stops at the first failure.
func (b *Band) AddElements(children ...ReportElement) error {
	for _, c := range children {
		if err := b.AddElement(c); err != nil {
			return err
		}
	}
	return nil
}

// SetElementAt replaces the child at position. A child that already belongs
// to this band is left where it is.
func (b *Band) SetElementAt(position int, child ReportElement) error {
	const op = "set element"
	if position < 0 || position >= len(b.elements) {
		return newStructureError(op, b.self, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, position, len(b.elements)))
	}
	if isNilElement(child) {
		return newStructureError(op, b.self, ErrNilElement)
	}
	self := b.self.(Section)
	if err := validateLooping(self, child); err != nil {
		return newStructureError(op, b.self, err)
	}
	if p := child.Parent(); p != nil && p.AsElement() == &b.Element {
		return nil
	}
	detachFromParent(child)
	old := b.elements[position]
	b.elements[position] = child
	b.cache = nil
	release(old)
	adopt(self, child)
	b.NotifyNodeChildRemoved(old)
	b.NotifyNodeChildAdded(child)
	return nil
}

// RemoveElement removes child if it belongs to this band.
func (b *Band) RemoveElement(child ReportElement) {
	if i := b.IndexOf(child); i >= 0 {
		_ = b.RemoveElementAt(i)
	}
}

// RemoveElementAt removes the child at position.
func (b *Band) RemoveElementAt(position int) error {
	if position < 0 || position >= len(b.elements) {
		return newStructureError("remove element", b.self, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, position, len(b.elements)))
	}
	old := b.elements[position]
	b.elements = slices.Delete(b.elements, position, position+1)
	b.cache = nil
	release(old)
	b.NotifyNodeChildRemoved(old)
	return nil
}

// Clear removes every child.
func (b *Band) Clear() {
	for len(b.elements) > 0 {
		_ = b.RemoveElementAt(len(b.elements) - 1)
	}
}

func (b *Band) copyElement(m copyMode) ReportElement {
	n := &Band{}
	b.copyBandInto(n, n, m)
	return n
}

func (b *Band) copyBandInto(dst *Band, self Section, m copyMode) {
	b.Element.copyInto(&dst.Element, self, m)
	if len(b.elements) == 0 {
		return
	}
	dst.elements = make([]ReportElement, len(b.elements))
	for i, c := range b.elements {
		dst.elements[i] = copyChild(self, m, c)
	}
}
