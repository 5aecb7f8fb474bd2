package report

import "sort"

// DataSchemaRule attaches metadata to a field of the report's data schema,
// such as a display label or a data format.
type DataSchemaRule struct {
	Field      string
	Attributes map[string]any
}

// DataSchemaDefinition describes the fields a report expects from its
// data source.
type DataSchemaDefinition struct {
	rules map[string]DataSchemaRule
}

func NewDataSchemaDefinition() *DataSchemaDefinition {
	return &DataSchemaDefinition{rules: make(map[string]DataSchemaRule)}
}

// AddRule stores a rule, replacing any existing rule for the same field.
func (d *DataSchemaDefinition) AddRule(rule DataSchemaRule) {
	attrs := make(map[string]any, len(rule.Attributes))
	for k, v := range rule.Attributes {
		attrs[k] = v
	}
	d.rules[rule.Field] = DataSchemaRule{Field: rule.Field, Attributes: attrs}
}

func (d *DataSchemaDefinition) RemoveRule(field string) {
	delete(d.rules, field)
}

// Rule returns the rule for field.
func (d *DataSchemaDefinition) Rule(field string) (DataSchemaRule, bool) {
	r, ok := d.rules[field]
	return r, ok
}

// Fields returns the fields with a rule, sorted.
func (d *DataSchemaDefinition) Fields() []string {
	fields := make([]string, 0, len(d.rules))
	for f := range d.rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (d *DataSchemaDefinition) Clone() *DataSchemaDefinition {
	n := NewDataSchemaDefinition()
	for _, r := range d.rules {
		n.AddRule(r)
	}
	return n
}
