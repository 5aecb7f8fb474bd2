package report

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// Parameter value types.
const (
	ParameterTypeAny    = ""
	ParameterTypeString = "string"
	ParameterTypeNumber = "number"
	ParameterTypeBool   = "bool"
	ParameterTypeDate   = "date"
)

// ParameterDefinitionEntry declares one report parameter.
type ParameterDefinitionEntry struct {
	Name         string
	Label        string
	ValueType    string
	DefaultValue any
	Mandatory    bool
}

func (p ParameterDefinitionEntry) accepts(v any) bool {
	switch p.ValueType {
	case ParameterTypeAny:
		return true
	case ParameterTypeString:
		_, ok := v.(string)
		return ok
	case ParameterTypeNumber:
		switch v.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	case ParameterTypeBool:
		_, ok := v.(bool)
		return ok
	case ParameterTypeDate:
		_, ok := v.(time.Time)
		return ok
	default:
		return false
	}
}

// ReportParameterDefinition is the ordered list of parameters a master
// report accepts.
type ReportParameterDefinition struct {
	entries []ParameterDefinitionEntry
}

func NewReportParameterDefinition() *ReportParameterDefinition {
	return &ReportParameterDefinition{}
}

// Add appends a parameter. Names must be unique and non-empty.
func (d *ReportParameterDefinition) Add(p ParameterDefinitionEntry) error {
	if p.Name == "" {
		return errors.New("parameter name must not be empty")
	}
	if _, ok := d.Entry(p.Name); ok {
		return fmt.Errorf("parameter %q already defined", p.Name)
	}
	switch p.ValueType {
	case ParameterTypeAny, ParameterTypeString, ParameterTypeNumber, ParameterTypeBool, ParameterTypeDate:
	default:
		return fmt.Errorf("parameter %q: unknown value type %q", p.Name, p.ValueType)
	}
	d.entries = append(d.entries, p)
	return nil
}

func (d *ReportParameterDefinition) Remove(name string) bool {
	for i, e := range d.entries {
		if e.Name == name {
			d.entries = slices.Delete(d.entries, i, i+1)
			return true
		}
	}
	return false
}

func (d *ReportParameterDefinition) Entry(name string) (ParameterDefinitionEntry, bool) {
	for _, e := range d.entries {
		if e.Name == name {
			return e, true
		}
	}
	return ParameterDefinitionEntry{}, false
}

func (d *ReportParameterDefinition) Entries() []ParameterDefinitionEntry {
	return append([]ParameterDefinitionEntry(nil), d.entries...)
}

func (d *ReportParameterDefinition) Len() int { return len(d.entries) }

func (d *ReportParameterDefinition) Clone() *ReportParameterDefinition {
	return &ReportParameterDefinition{entries: d.Entries()}
}

// ApplyDefaults returns a copy of values with the default value filled in
// for every parameter that has none.
func (d *ReportParameterDefinition) ApplyDefaults(values *ReportParameterValues) *ReportParameterValues {
	result := values.Clone()
	for _, e := range d.entries {
		if _, ok := result.values[e.Name]; !ok && e.DefaultValue != nil {
			result.values[e.Name] = e.DefaultValue
		}
	}
	return result
}

// ValidateValues checks values against the definition. Mandatory
// parameters without a value and values of the wrong type are errors;
// values for undeclared parameters are warnings.
func (d *ReportParameterDefinition) ValidateValues(values *ReportParameterValues) error {
	var issues []ValidationIssue
	for _, e := range d.entries {
		v, ok := values.values[e.Name]
		if !ok || v == nil {
			if e.Mandatory && e.DefaultValue == nil {
				issues = append(issues, ValidationIssue{
					Severity: IssueSeverityError,
					Code:     "parameter_missing",
					Path:     e.Name,
					Message:  "mandatory parameter has no value",
				})
			}
			continue
		}
		if !e.accepts(v) {
			issues = append(issues, ValidationIssue{
				Severity: IssueSeverityError,
				Code:     "parameter_type",
				Path:     e.Name,
				Message:  fmt.Sprintf("value of type %T is not a %s", v, e.ValueType),
			})
		}
	}
	for _, name := range values.ColumnNames() {
		if _, ok := d.Entry(name); !ok {
			issues = append(issues, ValidationIssue{
				Severity: IssueSeverityWarning,
				Code:     "parameter_unknown",
				Path:     name,
				Message:  "value for undeclared parameter",
			})
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ReportParameterValues holds the values of report parameters. It is a
// data row so it can be handed to data factories directly.
type ReportParameterValues struct {
	values map[string]any
}

func NewReportParameterValues() *ReportParameterValues {
	return &ReportParameterValues{values: make(map[string]any)}
}

func (v *ReportParameterValues) Get(name string) any { return v.values[name] }

// Set stores a value; nil removes it.
func (v *ReportParameterValues) Set(name string, value any) {
	if value == nil {
		delete(v.values, name)
		return
	}
	v.values[name] = value
}

func (v *ReportParameterValues) ColumnNames() []string {
	names := make([]string, 0, len(v.values))
	for k := range v.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsChanged is always false; parameter values do not advance.
func (v *ReportParameterValues) IsChanged(string) bool { return false }

func (v *ReportParameterValues) Len() int { return len(v.values) }

func (v *ReportParameterValues) Clone() *ReportParameterValues {
	n := NewReportParameterValues()
	for k, x := range v.values {
		n.values[k] = x
	}
	return n
}

// AllParameters as a mapping name imports or exports every parameter.
const AllParameters = "*"

// ParameterMapping maps a parameter of the outer report (Name) to a
// parameter of a sub-report (Alias), or the reverse for exports.
type ParameterMapping struct {
	Name  string
	Alias string
}
