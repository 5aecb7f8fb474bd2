package report

import "fmt"

// Section is an element that owns child elements.
type Section interface {
	ReportElement
	ElementCount() int
	// ElementAt returns the child at index, or nil when index is out of range.
	ElementAt(index int) ReportElement
	// RemoveElement detaches child. Sections with fixed slots install a fresh
	// default in the slot instead of leaving it empty. Unknown children are
	// ignored.
	RemoveElement(child ReportElement)
}

// Elements returns the children of s in order.
func Elements(s Section) []ReportElement {
	n := s.ElementCount()
	result := make([]ReportElement, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, s.ElementAt(i))
	}
	return result
}

// validateLooping fails when child is section itself or one of its ancestors.
func validateLooping(section Section, child ReportElement) error {
	target := child.AsElement()
	for s := section; s != nil; s = s.Parent() {
		if s.AsElement() == target {
			return fmt.Errorf("%w: %s is an ancestor of %s", ErrLoopDetected, describe(child), describe(section))
		}
	}
	return nil
}

// detachFromParent removes child from its current parent, if any.
func detachFromParent(child ReportElement) {
	if p := child.Parent(); p != nil {
		p.RemoveElement(child)
	}
}

func adopt(parent Section, child ReportElement) {
	child.AsElement().parent = parent
}

func release(child ReportElement) {
	child.AsElement().parent = nil
}

// setSlot replaces the child held in a fixed slot of owner. The new child is
// detached from its previous parent first. Setting the current occupant
// again is a no-op.
func setSlot[T ReportElement](owner Section, op string, slot *T, child T) error {
	if isNilElement(child) {
		return newStructureError(op, owner, ErrNilElement)
	}
	if sameElement(*slot, child) {
		return nil
	}
	if err := validateLooping(owner, child); err != nil {
		return newStructureError(op, owner, err)
	}
	detachFromParent(child)
	old := *slot
	*slot = child
	adopt(owner, child)
	el := owner.AsElement()
	if !isNilElement(old) {
		release(old)
		el.NotifyNodeChildRemoved(old)
	}
	el.NotifyNodeChildAdded(child)
	return nil
}

// copyChild copies a child for the copy of its owner and adopts the result.
func copyChild[T ReportElement](owner Section, m copyMode, child T) T {
	c := child.copyElement(m).(T)
	adopt(owner, c)
	return c
}

// slotAt returns slots[index], or nil when index is out of range.
func slotAt(index int, slots ...ReportElement) ReportElement {
	if index < 0 || index >= len(slots) {
		return nil
	}
	return slots[index]
}
