package report

import "github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"

// MasterReport is the top-level report definition. It owns the data
// factory, the parameters and the runtime environment of a report.
type MasterReport struct {
	reportDefinition
	dataFactory           *data.CompoundDataFactory
	parameterDefinition   *ReportParameterDefinition
	parameterValues       *ReportParameterValues
	environment           ReportEnvironment
	resourceBundleFactory ResourceBundleFactory
	pageDefinition        PageDefinition
	metaData              *DocumentMetaData
}

// NewMasterReport creates an empty report with one relational group, an
// empty compound data factory and an environment taken from the global
// configuration.
func NewMasterReport() *MasterReport {
	cfg := GetGlobalConfig()
	r := &MasterReport{}
	r.initDefinition(r, MasterReportType)
	r.dataFactory = data.NewCompoundDataFactory()
	r.parameterDefinition = NewReportParameterDefinition()
	r.parameterValues = NewReportParameterValues()
	r.environment = NewDefaultReportEnvironment(cfg)
	r.resourceBundleFactory = NewDefaultResourceBundleFactory(cfg.Locale)
	r.pageDefinition = DefaultPageDefinition()
	r.metaData = NewDocumentMetaData()
	return r
}

// DataFactory returns the report's data factory.
func (r *MasterReport) DataFactory() data.DataFactory { return r.dataFactory }

// CompoundDataFactory returns the data factory with its list operations.
func (r *MasterReport) CompoundDataFactory() *data.CompoundDataFactory { return r.dataFactory }

// SetDataFactory replaces the data factory. The factory is flattened into a
// compound factory; nil installs an empty one.
func (r *MasterReport) SetDataFactory(f data.DataFactory) {
	r.dataFactory = data.Normalize(f)
	r.NotifyNodePropertiesChanged(r.dataFactory)
}

func (r *MasterReport) ParameterDefinition() *ReportParameterDefinition { return r.parameterDefinition }

func (r *MasterReport) SetParameterDefinition(d *ReportParameterDefinition) {
	if d == nil {
		d = NewReportParameterDefinition()
	}
	r.parameterDefinition = d
	r.NotifyNodePropertiesChanged(d)
}

// ParameterValues returns the live parameter values.
func (r *MasterReport) ParameterValues() *ReportParameterValues { return r.parameterValues }

func (r *MasterReport) SetParameterValue(name string, value any) {
	r.parameterValues.Set(name, value)
	r.NotifyNodePropertiesChanged(ParameterMapping{Name: name})
}

func (r *MasterReport) ParameterValue(name string) any { return r.parameterValues.Get(name) }

// ValidateParameters checks the current values against the parameter
// definition after applying defaults.
func (r *MasterReport) ValidateParameters() error {
	return r.parameterDefinition.ValidateValues(r.parameterDefinition.ApplyDefaults(r.parameterValues))
}

func (r *MasterReport) ReportEnvironment() ReportEnvironment { return r.environment }

func (r *MasterReport) SetReportEnvironment(env ReportEnvironment) {
	if env == nil {
		env = NewDefaultReportEnvironment(nil)
	}
	r.environment = env
	r.NotifyNodePropertiesChanged(env)
}

func (r *MasterReport) ResourceBundleFactory() ResourceBundleFactory { return r.resourceBundleFactory }

func (r *MasterReport) SetResourceBundleFactory(f ResourceBundleFactory) {
	if f == nil {
		f = NewDefaultResourceBundleFactory(GetGlobalConfig().Locale)
	}
	r.resourceBundleFactory = f
	r.NotifyNodePropertiesChanged(f)
}

func (r *MasterReport) PageDefinition() PageDefinition { return r.pageDefinition }

func (r *MasterReport) SetPageDefinition(p PageDefinition) {
	r.pageDefinition = p
	r.NotifyNodePropertiesChanged(p)
}

// DocumentMetaData returns the live document metadata.
func (r *MasterReport) DocumentMetaData() *DocumentMetaData { return r.metaData }

// CloneReport is Clone with the concrete result type.
func (r *MasterReport) CloneReport() *MasterReport {
	return r.Clone().(*MasterReport)
}

// DeriveReport is Derive with the concrete result type.
func (r *MasterReport) DeriveReport(preserveIDs bool) *MasterReport {
	return r.Derive(preserveIDs).(*MasterReport)
}

// copyElement copies the whole report. The data factory, environment and
// resource bundles are always derived so that no copy shares mutable state
// with its source.
func (r *MasterReport) copyElement(m copyMode) ReportElement {
	n := &MasterReport{}
	r.copyDefinitionInto(&n.reportDefinition, n, m)
	n.dataFactory = data.Normalize(r.dataFactory.Derive())
	n.parameterDefinition = r.parameterDefinition.Clone()
	n.parameterValues = r.parameterValues.Clone()
	n.environment = r.environment.Derive()
	n.resourceBundleFactory = r.resourceBundleFactory.Derive()
	n.pageDefinition = r.pageDefinition
	n.metaData = r.metaData.Clone()
	return n
}
