package report

import (
	"fmt"
	"slices"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/data"
)

// Expression computes a value from the current data row. Expressions are
// attached to elements (attribute and style expressions) and to report
// definitions (named report expressions).
type Expression interface {
	Name() string
	Value(row data.DataRow) (any, error)
	// Clone returns an independent copy.
	Clone() Expression
}

// StructureFunction is an expression that runs while the report structure
// is processed, ordered by priority. Clone must return a StructureFunction.
type StructureFunction interface {
	Expression
	ProcessingPriority() int
}

// ReportPreProcessor rewrites a derived report definition before processing.
type ReportPreProcessor interface {
	PreProcess(def ReportDefinition) error
	Clone() ReportPreProcessor
}

// StaticExpression always yields the same value.
type StaticExpression struct {
	ExpressionName string
	Result         any
}

func (e *StaticExpression) Name() string                    { return e.ExpressionName }
func (e *StaticExpression) Value(data.DataRow) (any, error) { return e.Result, nil }
func (e *StaticExpression) Clone() Expression {
	c := *e
	return &c
}

// FieldExpression reads a column of the current data row.
type FieldExpression struct {
	ExpressionName string
	Field          string
}

func (e *FieldExpression) Name() string { return e.ExpressionName }

func (e *FieldExpression) Value(row data.DataRow) (any, error) {
	if row == nil {
		return nil, fmt.Errorf("expression %q: no data row", e.ExpressionName)
	}
	return row.Get(e.Field), nil
}

func (e *FieldExpression) Clone() Expression {
	c := *e
	return &c
}

// FuncExpression adapts a function to the Expression interface. The
// function is shared between clones and must not hold mutable state.
type FuncExpression struct {
	ExpressionName string
	Fn             func(row data.DataRow) (any, error)
}

func (e *FuncExpression) Name() string { return e.ExpressionName }

func (e *FuncExpression) Value(row data.DataRow) (any, error) {
	if e.Fn == nil {
		return nil, nil
	}
	return e.Fn(row)
}

func (e *FuncExpression) Clone() Expression {
	c := *e
	return &c
}

// ExpressionCollection is an ordered list of named report expressions.
type ExpressionCollection struct {
	expressions []Expression
}

// NewExpressionCollection creates an empty collection.
func NewExpressionCollection() *ExpressionCollection {
	return &ExpressionCollection{}
}

// Add appends an expression.
func (c *ExpressionCollection) Add(e Expression) error {
	if e == nil {
		return fmt.Errorf("add expression: %w", ErrNilElement)
	}
	c.expressions = append(c.expressions, e)
	return nil
}

// Len returns the number of expressions.
func (c *ExpressionCollection) Len() int { return len(c.expressions) }

// At returns the expression at index, or nil.
func (c *ExpressionCollection) At(index int) Expression {
	if index < 0 || index >= len(c.expressions) {
		return nil
	}
	return c.expressions[index]
}

// ByName returns the first expression with the given name.
func (c *ExpressionCollection) ByName(name string) Expression {
	for _, e := range c.expressions {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// IndexOf returns the position of e, or -1.
func (c *ExpressionCollection) IndexOf(e Expression) int {
	for i, x := range c.expressions {
		if x == e {
			return i
		}
	}
	return -1
}

// Remove removes e and reports whether it was present.
func (c *ExpressionCollection) Remove(e Expression) bool {
	i := c.IndexOf(e)
	if i < 0 {
		return false
	}
	c.expressions = slices.Delete(c.expressions, i, i+1)
	return true
}

// Expressions returns a copy of the ordered expression list.
func (c *ExpressionCollection) Expressions() []Expression {
	return append([]Expression(nil), c.expressions...)
}

// Clone deep-copies the collection.
func (c *ExpressionCollection) Clone() *ExpressionCollection {
	result := &ExpressionCollection{expressions: make([]Expression, len(c.expressions))}
	for i, e := range c.expressions {
		result.expressions[i] = e.Clone()
	}
	return result
}

// structureFunctionList is the attribute value holding a definition's
// structure functions.
type structureFunctionList []StructureFunction

func (l structureFunctionList) CloneAttribute() any {
	result := make(structureFunctionList, len(l))
	for i, f := range l {
		result[i] = f.Clone().(StructureFunction)
	}
	return result
}

// preProcessorList is the attribute value holding a definition's pre-processors.
type preProcessorList []ReportPreProcessor

func (l preProcessorList) CloneAttribute() any {
	result := make(preProcessorList, len(l))
	for i, p := range l {
		result[i] = p.Clone()
	}
	return result
}
