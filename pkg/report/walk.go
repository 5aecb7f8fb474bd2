package report

import (
	"errors"
	"strings"
)

// SkipChildren can be returned by a WalkFunc to skip the children of the
// current element.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every element visited by Walk.
type WalkFunc func(e ReportElement, depth int) error

// Walk visits root and its descendants depth-first in child order. It stops
// at the first error returned by fn other than SkipChildren.
func Walk(root ReportElement, fn WalkFunc) error {
	if isNilElement(root) {
		return nil
	}
	return walk(root, 0, fn)
}

func walk(e ReportElement, depth int, fn WalkFunc) error {
	if err := fn(e, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	s, ok := e.(Section)
	if !ok {
		return nil
	}
	for _, child := range Elements(s) {
		if isNilElement(child) {
			continue
		}
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindElementByName returns the first element below root, root included,
// with the given name.
func FindElementByName(root ReportElement, name string) ReportElement {
	var found ReportElement
	_ = Walk(root, func(e ReportElement, _ int) error {
		if e.Name() == name {
			found = e
			return errStopWalk
		}
		return nil
	})
	return found
}

// FindElementByID returns the first element below root, root included,
// carrying id.
func FindElementByID(root ReportElement, id InstanceID) ReportElement {
	var found ReportElement
	_ = Walk(root, func(e ReportElement, _ int) error {
		if e.ObjectID() == id {
			found = e
			return errStopWalk
		}
		return nil
	})
	return found
}

// SubReports returns the sub-reports embedded below root without descending
// into them.
func SubReports(root ReportElement) []*SubReport {
	var result []*SubReport
	_ = Walk(root, func(e ReportElement, depth int) error {
		if sr, ok := e.(*SubReport); ok && depth > 0 {
			result = append(result, sr)
			return SkipChildren
		}
		return nil
	})
	return result
}

// PathOf renders the chain of elements from the tree root down to e.
func PathOf(e ReportElement) string {
	var parts []string
	var cur ReportElement = e
	for !isNilElement(cur) {
		parts = append(parts, describe(cur))
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

var errStopWalk = errors.New("stop walk")
