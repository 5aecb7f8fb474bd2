// Package outline reads YAML report outlines and builds report definitions
// from them.
//
// An outline names the groups, bands and elements of a report:
//
//	name: sales
//	query: orders
//	tables:
//	  - name: orders
//	    columns: [REGION, AMOUNT]
//	    rows: [[East, 10], [West, 20]]
//	groups:
//	  - name: Region
//	    fields: [REGION]
//	    header:
//	      elements:
//	        - field: REGION
//	details:
//	  items:
//	    elements:
//	      - field: AMOUNT
//
// Groups are added outermost first. A crosstab entry must be the last group.
package outline

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report"
)

// Outline describes a master report.
type Outline struct {
	Definition `yaml:",inline"`

	Title       string            `yaml:"title,omitempty"`
	Parameters  []Parameter       `yaml:"parameters,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Locale      string            `yaml:"locale,omitempty"`
}

// Definition holds what master and sub-reports have in common.
type Definition struct {
	Name                string       `yaml:"name,omitempty"`
	Query               string       `yaml:"query,omitempty"`
	QueryLimit          *int         `yaml:"query_limit,omitempty"`
	QueryTimeout        *int         `yaml:"query_timeout,omitempty"`
	QueryLimitInherited *bool        `yaml:"query_limit_inherited,omitempty"`
	Tables              []Table      `yaml:"tables,omitempty"`
	Expressions         []Expression `yaml:"expressions,omitempty"`

	PageHeader   *Band    `yaml:"page_header,omitempty"`
	ReportHeader *Band    `yaml:"report_header,omitempty"`
	Groups       []Group  `yaml:"groups,omitempty"`
	Details      *Details `yaml:"details,omitempty"`
	ReportFooter *Band    `yaml:"report_footer,omitempty"`
	PageFooter   *Band    `yaml:"page_footer,omitempty"`
	Watermark    *Band    `yaml:"watermark,omitempty"`
}

// SubReport is a report embedded in a band.
type SubReport struct {
	Definition `yaml:",inline"`

	Inputs  []Mapping `yaml:"inputs,omitempty"`
	Exports []Mapping `yaml:"exports,omitempty"`
}

// Mapping maps a parameter name to an alias. An empty alias keeps the name.
type Mapping struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias,omitempty"`
}

type Parameter struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Mandatory bool   `yaml:"mandatory,omitempty"`
	Default   any    `yaml:"default,omitempty"`
}

// Table is a static result set served under its name as query.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows,omitempty"`
}

// Expression is a named report expression. It reads Field when set and
// yields Value otherwise.
type Expression struct {
	Name  string `yaml:"name"`
	Field string `yaml:"field,omitempty"`
	Value any    `yaml:"value,omitempty"`
}

type Band struct {
	Name       string      `yaml:"name,omitempty"`
	Repeat     bool        `yaml:"repeat,omitempty"`
	Elements   []Element   `yaml:"elements,omitempty"`
	SubReports []SubReport `yaml:"subreports,omitempty"`
}

// Element is a label when Label is set and a text field when Field is set.
type Element struct {
	Name    string         `yaml:"name,omitempty"`
	Label   string         `yaml:"label,omitempty"`
	Field   string         `yaml:"field,omitempty"`
	Visible *bool          `yaml:"visible,omitempty"`
	Style   map[string]any `yaml:"style,omitempty"`
}

// Group is a relational group, or a crosstab when Crosstab is set.
type Group struct {
	Name     string    `yaml:"name,omitempty"`
	Fields   []string  `yaml:"fields,omitempty"`
	Header   *Band     `yaml:"header,omitempty"`
	Footer   *Band     `yaml:"footer,omitempty"`
	Crosstab *Crosstab `yaml:"crosstab,omitempty"`
}

type Crosstab struct {
	Others        []Dimension `yaml:"others,omitempty"`
	Rows          []Dimension `yaml:"rows"`
	Columns       []Dimension `yaml:"columns"`
	Cells         []Cell      `yaml:"cells,omitempty"`
	PaddingFields []string    `yaml:"padding_fields,omitempty"`
}

// Dimension is one level of a crosstab.
type Dimension struct {
	Name         string `yaml:"name,omitempty"`
	Field        string `yaml:"field"`
	PrintSummary bool   `yaml:"print_summary,omitempty"`
	Title        *Band  `yaml:"title,omitempty"`
	Header       *Band  `yaml:"header,omitempty"`
	Summary      *Band  `yaml:"summary,omitempty"`
}

// Cell is the content for one row and column field combination. Empty
// fields address totals.
type Cell struct {
	Row      string    `yaml:"row,omitempty"`
	Column   string    `yaml:"column,omitempty"`
	Elements []Element `yaml:"elements,omitempty"`
}

// Details describes the bands of the innermost data body.
type Details struct {
	Header *Band `yaml:"header,omitempty"`
	Items  *Band `yaml:"items,omitempty"`
	Footer *Band `yaml:"footer,omitempty"`
	NoData *Band `yaml:"no_data,omitempty"`
}

// ErrEmptyOutline is returned for documents without content.
var ErrEmptyOutline = errors.New("outline is empty")

// Parse decodes an outline. Unknown keys are rejected.
func Parse(b []byte) (*Outline, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var o Outline
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyOutline
		}
		return nil, report.WithContext(err, "parse outline", nil)
	}
	return &o, nil
}

// Load reads and parses the outline file at path.
func Load(path string) (*Outline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, report.WithContext(err, "load outline", map[string]interface{}{"path": path})
	}
	o, err := Parse(b)
	if err != nil {
		return nil, report.WithContext(err, "load outline", map[string]interface{}{"path": path})
	}
	return o, nil
}

// Marshal encodes the outline as YAML.
func (o *Outline) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}
