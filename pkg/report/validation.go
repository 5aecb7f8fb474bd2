package report

import (
	"fmt"
	"sort"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// ValidateDefinition checks the structure of a report definition and
// returns a *ValidationError listing every problem found, or nil.
//
// Errors are broken invariants such as a child whose parent reference does
// not point at its section, or a body the owning group does not accept.
// Sub-reports mapping two parameters to the same alias are errors too.
// Warnings are suspicious designs: duplicate group names, nested groups
// without fields, crosstabs without cells, a query the data factory cannot
// answer. With StrictStructure configured, warnings are reported as errors.
func ValidateDefinition(def ReportDefinition) error {
	if isNilElement(def) {
		return &ValidationError{Issues: []ValidationIssue{{
			Severity: IssueSeverityError,
			Code:     "nil_definition",
			Message:  "report definition is nil",
		}}}
	}
	v := &validator{strict: GetGlobalConfig().StrictStructure}
	v.checkTree(def)
	v.checkGroups(def)
	v.checkQuery(def)
	v.checkMappings(def)
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}

type validator struct {
	strict bool
	issues []ValidationIssue
}

func (v *validator) add(severity IssueSeverity, code string, e ReportElement, format string, args ...any) {
	if v.strict {
		severity = IssueSeverityError
	}
	v.issues = append(v.issues, ValidationIssue{
		Severity: severity,
		Code:     code,
		Path:     PathOf(e),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) checkTree(def ReportDefinition) {
	seen := make(map[InstanceID]ReportElement)
	_ = Walk(def, func(e ReportElement, depth int) error {
		if prev, ok := seen[e.ObjectID()]; ok {
			v.add(IssueSeverityWarning, "duplicate_id", e, "object id %s is also used by %s", e.ObjectID(), describe(prev))
		} else {
			seen[e.ObjectID()] = e
		}
		s, ok := e.(Section)
		if !ok {
			return nil
		}
		for _, child := range Elements(s) {
			if isNilElement(child) {
				v.add(IssueSeverityError, "nil_child", e, "section holds a nil child")
				continue
			}
			if p := child.Parent(); p == nil || p.AsElement() != e.AsElement() {
				v.add(IssueSeverityError, "parent_mismatch", child, "parent reference does not point at %s", describe(e))
			}
		}
		if g, ok := e.(Group); ok {
			if body := g.Body(); !isNilElement(body) && !containsKind(allowedBodies[g.kind()], body.kind()) {
				v.add(IssueSeverityError, "illegal_body", e, "%s cannot hold a %s", g.kind(), body.kind())
			}
		}
		return nil
	})
}

func (v *validator) checkGroups(def ReportDefinition) {
	names := make(map[string]int)
	groups := NestedGroups(def.RootGroup())
	for i, g := range groups {
		if n := g.Name(); n != "" {
			names[n]++
		}
		if rg, ok := g.(*RelationalGroup); ok && i > 0 && len(rg.Fields()) == 0 {
			v.add(IssueSeverityWarning, "group_without_fields", g, "nested relational group has no group fields")
		}
		if ct, ok := g.(*CrosstabGroup); ok {
			v.checkCrosstab(ct)
		}
	}
	dups := make([]string, 0)
	for n, c := range names {
		if c > 1 {
			dups = append(dups, n)
		}
	}
	sort.Strings(dups)
	for _, n := range dups {
		v.add(IssueSeverityWarning, "duplicate_group_name", def, "group name %q is used %d times", n, names[n])
	}
}

func (v *validator) checkQuery(def ReportDefinition) {
	query := def.Query()
	df := def.DataFactory()
	if query == "" || isNilElement(df) {
		return
	}
	if !df.IsQueryExecutable(query, data.EmptyDataRow) {
		v.add(IssueSeverityWarning, "query_unknown", def, "query %q is not executable by the data factory", query)
	}
}

// checkCrosstab warns when the innermost cell body of a crosstab holds no
// cell for the combination of its innermost row and column fields.
func (v *validator) checkCrosstab(ct *CrosstabGroup) {
	var row, col string
	var cells *CrosstabCellBody
	for _, g := range NestedGroups(ct) {
		switch g := g.(type) {
		case *CrosstabRowGroup:
			row = g.Field()
		case *CrosstabColumnGroup:
			col = g.Field()
			if b, ok := g.Body().(*CrosstabCellBody); ok {
				cells = b
			}
		}
	}
	if cells == nil {
		return
	}
	if cells.CellCount() == 0 {
		v.add(IssueSeverityWarning, "crosstab_without_cells", cells, "crosstab cell body holds no cells")
		return
	}
	if cells.FindCell(row, col) == nil {
		v.add(IssueSeverityWarning, "crosstab_cell_missing", cells, "no cell for row %q and column %q", row, col)
	}
}

// checkMappings covers def itself and every sub-report at any depth below it.
func (v *validator) checkMappings(def ReportDefinition) {
	_ = Walk(def, func(e ReportElement, _ int) error {
		if sr, ok := e.(*SubReport); ok {
			v.checkAliases(sr, "input", sr.InputMappings())
			v.checkAliases(sr, "export", sr.ExportMappings())
		}
		return nil
	})
}

func (v *validator) checkAliases(sr *SubReport, kind string, mappings []ParameterMapping) {
	seen := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		if seen[m.Alias] {
			v.add(IssueSeverityError, "duplicate_mapping_alias", sr, "%s alias %q is mapped more than once", kind, m.Alias)
		}
		seen[m.Alias] = true
	}
}
