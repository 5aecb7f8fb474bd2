package report

// ElementType tags an element and supplies its style defaults.
type ElementType struct {
	name         string
	defaultStyle map[*StyleKey]any
}

// NewElementType creates an element type with the given style defaults.
func NewElementType(name string, defaults map[*StyleKey]any) *ElementType {
	t := &ElementType{name: name, defaultStyle: make(map[*StyleKey]any, len(defaults))}
	for k, v := range defaults {
		t.defaultStyle[k] = v
	}
	return t
}

func (t *ElementType) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

func (t *ElementType) String() string { return t.Name() }

// DefaultStyle returns the type's default for key.
func (t *ElementType) DefaultStyle(key *StyleKey) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.defaultStyle[key]
	return v, ok
}

var blockLayout = map[*StyleKey]any{StyleLayout: "block"}

// Built-in element types.
var (
	LegacyType      = NewElementType("legacy", nil)
	LabelType       = NewElementType("label", nil)
	TextFieldType   = NewElementType("text-field", nil)
	NumberFieldType = NewElementType("number-field", nil)
	ImageType       = NewElementType("content", nil)

	BandType          = NewElementType("band", blockLayout)
	PageHeaderType    = NewElementType("page-header", blockLayout)
	PageFooterType    = NewElementType("page-footer", blockLayout)
	ReportHeaderType  = NewElementType("report-header", blockLayout)
	ReportFooterType  = NewElementType("report-footer", blockLayout)
	WatermarkType     = NewElementType("watermark", nil)
	GroupHeaderType   = NewElementType("group-header", blockLayout)
	GroupFooterType   = NewElementType("group-footer", blockLayout)
	ItemBandType      = NewElementType("itemband", blockLayout)
	NoDataBandType    = NewElementType("no-data-band", blockLayout)
	DetailsHeaderType = NewElementType("details-header", blockLayout)
	DetailsFooterType = NewElementType("details-footer", blockLayout)
	MasterReportType  = NewElementType("master-report", blockLayout)
	SubReportType     = NewElementType("sub-report", blockLayout)

	RelationalGroupType = NewElementType("relational-group", blockLayout)
	GroupDataBodyType   = NewElementType("group-data-body", blockLayout)
	SubGroupBodyType    = NewElementType("sub-group-body", blockLayout)

	CrosstabGroupType           = NewElementType("crosstab-group", blockLayout)
	CrosstabOtherGroupType      = NewElementType("crosstab-other-group", blockLayout)
	CrosstabOtherGroupBodyType  = NewElementType("crosstab-other-group-body", blockLayout)
	CrosstabRowGroupType        = NewElementType("crosstab-row-group", blockLayout)
	CrosstabRowGroupBodyType    = NewElementType("crosstab-row-group-body", blockLayout)
	CrosstabColumnGroupType     = NewElementType("crosstab-column-group", blockLayout)
	CrosstabColumnGroupBodyType = NewElementType("crosstab-column-group-body", blockLayout)
	CrosstabCellBodyType        = NewElementType("crosstab-cell-body", blockLayout)
	CrosstabCellType            = NewElementType("crosstab-cell", nil)
	CrosstabHeaderType          = NewElementType("crosstab-header", nil)
	CrosstabTitleHeaderType     = NewElementType("crosstab-title-header", nil)
	CrosstabSummaryHeaderType   = NewElementType("crosstab-summary-header", nil)
)
