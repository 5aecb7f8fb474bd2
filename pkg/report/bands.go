package report

// PageHeader is printed at the top of every page.
type PageHeader struct{ Band }

func NewPageHeader() *PageHeader {
	b := &PageHeader{}
	b.init(b, PageHeaderType)
	return b
}

func (b *PageHeader) copyElement(m copyMode) ReportElement {
	n := &PageHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

func (b *PageHeader) IsDisplayOnFirstPage() bool { return b.style.BooleanStyleProperty(StyleDisplayOnFirstPage) }
func (b *PageHeader) IsDisplayOnLastPage() bool  { return b.style.BooleanStyleProperty(StyleDisplayOnLastPage) }

func (b *PageHeader) SetDisplayOnFirstPage(display bool) {
	b.style.SetStyleProperty(StyleDisplayOnFirstPage, display)
}

func (b *PageHeader) SetDisplayOnLastPage(display bool) {
	b.style.SetStyleProperty(StyleDisplayOnLastPage, display)
}

// PageFooter is printed at the bottom of every page.
type PageFooter struct{ Band }

func NewPageFooter() *PageFooter {
	b := &PageFooter{}
	b.init(b, PageFooterType)
	return b
}

func (b *PageFooter) copyElement(m copyMode) ReportElement {
	n := &PageFooter{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

func (b *PageFooter) IsDisplayOnFirstPage() bool { return b.style.BooleanStyleProperty(StyleDisplayOnFirstPage) }
func (b *PageFooter) IsDisplayOnLastPage() bool  { return b.style.BooleanStyleProperty(StyleDisplayOnLastPage) }

func (b *PageFooter) SetDisplayOnFirstPage(display bool) {
	b.style.SetStyleProperty(StyleDisplayOnFirstPage, display)
}

func (b *PageFooter) SetDisplayOnLastPage(display bool) {
	b.style.SetStyleProperty(StyleDisplayOnLastPage, display)
}

// ReportHeader is printed once before the first group.
type ReportHeader struct{ Band }

func NewReportHeader() *ReportHeader {
	b := &ReportHeader{}
	b.init(b, ReportHeaderType)
	return b
}

func (b *ReportHeader) copyElement(m copyMode) ReportElement {
	n := &ReportHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// ReportFooter is printed once after the last group.
type ReportFooter struct{ Band }

func NewReportFooter() *ReportFooter {
	b := &ReportFooter{}
	b.init(b, ReportFooterType)
	return b
}

func (b *ReportFooter) copyElement(m copyMode) ReportElement {
	n := &ReportFooter{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// Watermark is printed beneath the content of every page.
type Watermark struct{ Band }

func NewWatermark() *Watermark {
	b := &Watermark{}
	b.init(b, WatermarkType)
	return b
}

func (b *Watermark) copyElement(m copyMode) ReportElement {
	n := &Watermark{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// GroupHeader starts every instance of a relational group.
type GroupHeader struct{ Band }

func NewGroupHeader() *GroupHeader {
	b := &GroupHeader{}
	b.init(b, GroupHeaderType)
	return b
}

func (b *GroupHeader) copyElement(m copyMode) ReportElement {
	n := &GroupHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// IsRepeat reports whether the band is repeated on every page of its group.
func (b *GroupHeader) IsRepeat() bool { return b.style.BooleanStyleProperty(StyleRepeatHeader) }

func (b *GroupHeader) SetRepeat(repeat bool) {
	b.style.SetStyleProperty(StyleRepeatHeader, repeat)
}

// GroupFooter ends every instance of a relational group.
type GroupFooter struct{ Band }

func NewGroupFooter() *GroupFooter {
	b := &GroupFooter{}
	b.init(b, GroupFooterType)
	return b
}

func (b *GroupFooter) copyElement(m copyMode) ReportElement {
	n := &GroupFooter{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// IsRepeat reports whether the band is repeated on every page of its group.
func (b *GroupFooter) IsRepeat() bool { return b.style.BooleanStyleProperty(StyleRepeatHeader) }

func (b *GroupFooter) SetRepeat(repeat bool) {
	b.style.SetStyleProperty(StyleRepeatHeader, repeat)
}

// ItemBand is printed once per data row.
type ItemBand struct{ Band }

func NewItemBand() *ItemBand {
	b := &ItemBand{}
	b.init(b, ItemBandType)
	return b
}

func (b *ItemBand) copyElement(m copyMode) ReportElement {
	n := &ItemBand{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// NoDataBand replaces the item band when the query returns no rows.
type NoDataBand struct{ Band }

func NewNoDataBand() *NoDataBand {
	b := &NoDataBand{}
	b.init(b, NoDataBandType)
	return b
}

func (b *NoDataBand) copyElement(m copyMode) ReportElement {
	n := &NoDataBand{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// DetailsHeader is printed before the first item band of a group instance.
type DetailsHeader struct{ Band }

func NewDetailsHeader() *DetailsHeader {
	b := &DetailsHeader{}
	b.init(b, DetailsHeaderType)
	return b
}

func (b *DetailsHeader) copyElement(m copyMode) ReportElement {
	n := &DetailsHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// IsRepeat reports whether the band is repeated on every page of its group.
func (b *DetailsHeader) IsRepeat() bool { return b.style.BooleanStyleProperty(StyleRepeatHeader) }

func (b *DetailsHeader) SetRepeat(repeat bool) {
	b.style.SetStyleProperty(StyleRepeatHeader, repeat)
}

// DetailsFooter is printed after the last item band of a group instance.
type DetailsFooter struct{ Band }

func NewDetailsFooter() *DetailsFooter {
	b := &DetailsFooter{}
	b.init(b, DetailsFooterType)
	return b
}

func (b *DetailsFooter) copyElement(m copyMode) ReportElement {
	n := &DetailsFooter{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// IsRepeat reports whether the band is repeated on every page of its group.
func (b *DetailsFooter) IsRepeat() bool { return b.style.BooleanStyleProperty(StyleRepeatHeader) }

func (b *DetailsFooter) SetRepeat(repeat bool) {
	b.style.SetStyleProperty(StyleRepeatHeader, repeat)
}

type CrosstabHeader struct{ Band }

func NewCrosstabHeader() *CrosstabHeader {
	b := &CrosstabHeader{}
	b.init(b, CrosstabHeaderType)
	return b
}

func (b *CrosstabHeader) copyElement(m copyMode) ReportElement {
	n := &CrosstabHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

type CrosstabTitleHeader struct{ Band }

func NewCrosstabTitleHeader() *CrosstabTitleHeader {
	b := &CrosstabTitleHeader{}
	b.init(b, CrosstabTitleHeaderType)
	return b
}

func (b *CrosstabTitleHeader) copyElement(m copyMode) ReportElement {
	n := &CrosstabTitleHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

type CrosstabSummaryHeader struct{ Band }

func NewCrosstabSummaryHeader() *CrosstabSummaryHeader {
	b := &CrosstabSummaryHeader{}
	b.init(b, CrosstabSummaryHeaderType)
	return b
}

func (b *CrosstabSummaryHeader) copyElement(m copyMode) ReportElement {
	n := &CrosstabSummaryHeader{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// CrosstabCell holds the content printed at one row/column intersection.
type CrosstabCell struct{ Band }

func NewCrosstabCell() *CrosstabCell {
	b := &CrosstabCell{}
	b.init(b, CrosstabCellType)
	return b
}

func (b *CrosstabCell) copyElement(m copyMode) ReportElement {
	n := &CrosstabCell{}
	b.copyBandInto(&n.Band, n, m)
	return n
}

// RowField names the row group this cell summarises; empty means the
// innermost row group.
func (b *CrosstabCell) RowField() string {
	return b.stringAttribute(CrosstabNamespace, AttrRowField)
}

func (b *CrosstabCell) SetRowField(field string) {
	b.SetAttribute(CrosstabNamespace, AttrRowField, nilIfEmpty(field))
}

// ColumnField names the column group this cell summarises; empty means the
// innermost column group.
func (b *CrosstabCell) ColumnField() string {
	return b.stringAttribute(CrosstabNamespace, AttrColumnField)
}

func (b *CrosstabCell) SetColumnField(field string) {
	b.SetAttribute(CrosstabNamespace, AttrColumnField, nilIfEmpty(field))
}

// NewLabel creates a label element with a static text value.
func NewLabel(text string) *Element {
	e := NewElement(LabelType)
	e.SetAttribute(CoreNamespace, AttrValue, text)
	return e
}

// NewTextField creates a text field bound to a data row column.
func NewTextField(field string) *Element {
	e := NewElement(TextFieldType)
	e.SetAttribute(CoreNamespace, AttrField, field)
	return e
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
