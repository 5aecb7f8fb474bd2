package report

import (
	"fmt"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// Group is a section that repeats its body for every distinct value of its
// grouping criteria.
type Group interface {
	Section
	Body() GroupBody
	// SetGroupBody replaces the body. Bodies the group type does not accept
	// are rejected with ErrIllegalBody and the group is left unchanged.
	SetGroupBody(body GroupBody) error
	// IsGroupChange reports whether row starts a new group instance.
	IsGroupChange(row data.DataRow) bool
	// GeneratedName returns the name, or a stable synthetic name for unnamed groups.
	GeneratedName() string

	kind() structureKind
}

// GroupBody is the content section of a group.
type GroupBody interface {
	Section
	kind() structureKind
}

// GroupHolder is a body that holds exactly one nested group.
type GroupHolder interface {
	GroupBody
	NestedGroup() Group
	// SetNestedGroup replaces the nested group. Groups the body type does not
	// accept are rejected with ErrIllegalGroup.
	SetNestedGroup(g Group) error
}

// TopLevelGroup is a group that can be the root group of a report or sit
// in a SubGroupBody: *RelationalGroup or *CrosstabGroup.
type TopLevelGroup interface {
	Group
	topLevel()
}

// RelationalBody is a body accepted by *RelationalGroup: *GroupDataBody or
// *SubGroupBody.
type RelationalBody interface {
	GroupBody
	relationalBody()
}

// CrosstabOtherLevelBody is a body accepted by *CrosstabGroup and
// *CrosstabOtherGroup: *CrosstabOtherGroupBody or *CrosstabRowGroupBody.
type CrosstabOtherLevelBody interface {
	GroupBody
	otherLevelBody()
}

// CrosstabRowLevelBody is a body accepted by *CrosstabRowGroup:
// *CrosstabRowGroupBody or *CrosstabColumnGroupBody.
type CrosstabRowLevelBody interface {
	GroupBody
	rowLevelBody()
}

// CrosstabColumnLevelBody is a body accepted by *CrosstabColumnGroup:
// *CrosstabColumnGroupBody or *CrosstabCellBody.
type CrosstabColumnLevelBody interface {
	GroupBody
	columnLevelBody()
}

type structureKind int

const (
	kindRelationalGroup structureKind = iota + 1
	kindCrosstabGroup
	kindCrosstabOtherGroup
	kindCrosstabRowGroup
	kindCrosstabColumnGroup
	kindGroupDataBody
	kindSubGroupBody
	kindCrosstabOtherGroupBody
	kindCrosstabRowGroupBody
	kindCrosstabColumnGroupBody
	kindCrosstabCellBody
)

var kindNames = map[structureKind]string{
	kindRelationalGroup:         "relational group",
	kindCrosstabGroup:           "crosstab group",
	kindCrosstabOtherGroup:      "crosstab other group",
	kindCrosstabRowGroup:        "crosstab row group",
	kindCrosstabColumnGroup:     "crosstab column group",
	kindGroupDataBody:           "group data body",
	kindSubGroupBody:            "sub group body",
	kindCrosstabOtherGroupBody:  "crosstab other group body",
	kindCrosstabRowGroupBody:    "crosstab row group body",
	kindCrosstabColumnGroupBody: "crosstab column group body",
	kindCrosstabCellBody:        "crosstab cell body",
}

func (k structureKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("structure kind %d", int(k))
}

// allowedBodies lists the body kinds each group kind accepts. The sealed body
// interfaces above encode the same table for the typed setters.
var allowedBodies = map[structureKind][]structureKind{
	kindRelationalGroup:     {kindGroupDataBody, kindSubGroupBody},
	kindCrosstabGroup:       {kindCrosstabOtherGroupBody, kindCrosstabRowGroupBody},
	kindCrosstabOtherGroup:  {kindCrosstabOtherGroupBody, kindCrosstabRowGroupBody},
	kindCrosstabRowGroup:    {kindCrosstabRowGroupBody, kindCrosstabColumnGroupBody},
	kindCrosstabColumnGroup: {kindCrosstabColumnGroupBody, kindCrosstabCellBody},
}

// allowedGroups lists the group kinds each holder body kind accepts.
var allowedGroups = map[structureKind][]structureKind{
	kindSubGroupBody:            {kindRelationalGroup, kindCrosstabGroup},
	kindCrosstabOtherGroupBody:  {kindCrosstabOtherGroup},
	kindCrosstabRowGroupBody:    {kindCrosstabRowGroup},
	kindCrosstabColumnGroupBody: {kindCrosstabColumnGroup},
}

func containsKind(kinds []structureKind, k structureKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

// checkBody validates body for g before any mutation takes place.
func checkBody(g Group, body GroupBody) error {
	const op = "set body"
	if isNilElement(body) {
		return newStructureError(op, g, ErrNilElement)
	}
	if !containsKind(allowedBodies[g.kind()], body.kind()) {
		return newStructureError(op, g, fmt.Errorf("%w: %s cannot hold a %s", ErrIllegalBody, g.kind(), body.kind()))
	}
	return nil
}

// checkNestedGroup validates g for holder before any mutation takes place.
func checkNestedGroup(holder GroupBody, g Group) error {
	const op = "set group"
	if isNilElement(g) {
		return newStructureError(op, holder, ErrNilElement)
	}
	if !containsKind(allowedGroups[holder.kind()], g.kind()) {
		return newStructureError(op, holder, fmt.Errorf("%w: %s cannot hold a %s", ErrIllegalGroup, holder.kind(), g.kind()))
	}
	return nil
}

// generatedGroupName implements Group.GeneratedName.
func generatedGroupName(e *Element) string {
	if name := e.Name(); name != "" {
		return name
	}
	return "::group-" + e.objectID.short()
}

// groupChanged reports whether any of fields changed in row.
func groupChanged(row data.DataRow, fields ...string) bool {
	if row == nil {
		return false
	}
	for _, f := range fields {
		if f != "" && row.IsChanged(f) {
			return true
		}
	}
	return false
}

// NestedGroups returns g followed by every group nested below it through
// group holders, outermost first.
func NestedGroups(g Group) []Group {
	var result []Group
	for !isNilElement(g) {
		result = append(result, g)
		holder, ok := g.Body().(GroupHolder)
		if !ok {
			break
		}
		g = holder.NestedGroup()
	}
	return result
}
