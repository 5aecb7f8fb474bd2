package report

import (
	"errors"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// SubReport is a report definition embedded in a band of another report.
// Parameters flow in through input mappings and out through export mappings.
type SubReport struct {
	reportDefinition
	inputParameters  []ParameterMapping
	exportParameters []ParameterMapping
	dataFactory      data.DataFactory
}

func NewSubReport() *SubReport {
	r := &SubReport{}
	r.initDefinition(r, SubReportType)
	return r
}

// DataFactory returns the sub-report's own data factory, or nil when it
// queries through the master report's factory.
func (r *SubReport) DataFactory() data.DataFactory { return r.dataFactory }

func (r *SubReport) SetDataFactory(f data.DataFactory) {
	r.dataFactory = f
	r.NotifyNodePropertiesChanged(f)
}

// InputMappings returns the input parameter mappings in order.
func (r *SubReport) InputMappings() []ParameterMapping {
	return append([]ParameterMapping(nil), r.inputParameters...)
}

// ExportMappings returns the export parameter mappings in order.
func (r *SubReport) ExportMappings() []ParameterMapping {
	return append([]ParameterMapping(nil), r.exportParameters...)
}

// AddInputParameter maps the outer parameter name to alias inside the
// sub-report. Mapping AllParameters imports every outer value.
func (r *SubReport) AddInputParameter(name, alias string) error {
	m, err := newParameterMapping(name, alias)
	if err != nil {
		return err
	}
	r.inputParameters = append(r.inputParameters, m)
	r.NotifyNodePropertiesChanged(m)
	return nil
}

// AddExportParameter maps the inner parameter name to alias in the outer
// report. Mapping AllParameters exports every inner value.
func (r *SubReport) AddExportParameter(name, alias string) error {
	m, err := newParameterMapping(name, alias)
	if err != nil {
		return err
	}
	r.exportParameters = append(r.exportParameters, m)
	r.NotifyNodePropertiesChanged(m)
	return nil
}

func (r *SubReport) RemoveInputParameter(alias string) bool {
	var ok bool
	r.inputParameters, ok = removeMapping(r.inputParameters, alias)
	if ok {
		r.NotifyNodePropertiesChanged(ParameterMapping{Alias: alias})
	}
	return ok
}

func (r *SubReport) RemoveExportParameter(alias string) bool {
	var ok bool
	r.exportParameters, ok = removeMapping(r.exportParameters, alias)
	if ok {
		r.NotifyNodePropertiesChanged(ParameterMapping{Alias: alias})
	}
	return ok
}

func (r *SubReport) ClearInputParameters() {
	r.inputParameters = nil
	r.NotifyNodePropertiesChanged(nil)
}

func (r *SubReport) ClearExportParameters() {
	r.exportParameters = nil
	r.NotifyNodePropertiesChanged(nil)
}

// IsImportAll reports whether the input mappings import every parameter.
func (r *SubReport) IsImportAll() bool { return hasWildcard(r.inputParameters) }

// IsExportAll reports whether the export mappings export every parameter.
func (r *SubReport) IsExportAll() bool { return hasWildcard(r.exportParameters) }

// ResolveInputs computes the parameter row of the sub-report from the outer
// row. Explicit mappings are applied after a wildcard import, so they win.
func (r *SubReport) ResolveInputs(outer data.DataRow) *data.StaticDataRow {
	values := make(map[string]any)
	if outer != nil {
		if r.IsImportAll() {
			for _, c := range outer.ColumnNames() {
				values[c] = outer.Get(c)
			}
		}
		for _, m := range r.inputParameters {
			if m.Name == AllParameters {
				continue
			}
			values[m.Alias] = outer.Get(m.Name)
		}
	}
	return data.NewStaticDataRow(values)
}

// CloneSubReport is Clone with the concrete result type.
func (r *SubReport) CloneSubReport() *SubReport {
	return r.Clone().(*SubReport)
}

// DeriveSubReport is Derive with the concrete result type.
func (r *SubReport) DeriveSubReport(preserveIDs bool) *SubReport {
	return r.Derive(preserveIDs).(*SubReport)
}

func (r *SubReport) copyElement(m copyMode) ReportElement {
	n := &SubReport{}
	r.copyDefinitionInto(&n.reportDefinition, n, m)
	n.inputParameters = r.InputMappings()
	n.exportParameters = r.ExportMappings()
	if r.dataFactory != nil {
		n.dataFactory = r.dataFactory.Derive()
	}
	return n
}

func newParameterMapping(name, alias string) (ParameterMapping, error) {
	if name == "" {
		return ParameterMapping{}, errors.New("parameter mapping needs a name")
	}
	if alias == "" {
		alias = name
	}
	if (name == AllParameters) != (alias == AllParameters) {
		return ParameterMapping{}, errors.New("the wildcard mapping must map * to *")
	}
	return ParameterMapping{Name: name, Alias: alias}, nil
}

func removeMapping(mappings []ParameterMapping, alias string) ([]ParameterMapping, bool) {
	for i, m := range mappings {
		if m.Alias == alias {
			return append(mappings[:i:i], mappings[i+1:]...), true
		}
	}
	return mappings, false
}

func hasWildcard(mappings []ParameterMapping) bool {
	for _, m := range mappings {
		if m.Name == AllParameters {
			return true
		}
	}
	return false
}
