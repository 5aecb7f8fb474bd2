package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel causes of structural errors. Structural setters wrap them in a
// StructureError; match with errors.Is.
var (
	ErrNilElement       = errors.New("element must not be nil")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrLoopDetected     = errors.New("adding the element would create a loop")
	ErrIllegalBody      = errors.New("body type is not allowed for this group")
	ErrIllegalGroup     = errors.New("group type is not allowed for this body")
	ErrGroupNotFound    = errors.New("group is not part of this report")
)

// StructureError reports a rejected mutation of the element tree. The tree is
// left unchanged when a StructureError is returned.
type StructureError struct {
	Op      string
	Element string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("structure error during %s on %s: %v", e.Op, e.Element, e.Cause)
	}
	return fmt.Sprintf("structure error during %s: %v", e.Op, e.Cause)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}

// newStructureError creates a structure error for the element on which op failed.
func newStructureError(op string, on ReportElement, cause error) error {
	desc := ""
	if !isNilElement(on) {
		desc = describe(on)
	}
	return &StructureError{Op: op, Element: desc, Cause: cause}
}

// IsStructureError checks if an error is a structure error
func IsStructureError(err error) bool {
	var target *StructureError
	return errors.As(err, &target)
}

// IssueSeverity indicates how serious a validation issue is.
type IssueSeverity string

const (
	IssueSeverityError   IssueSeverity = "error"
	IssueSeverityWarning IssueSeverity = "warning"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Severity IssueSeverity
	Code     string
	Path     string
	Message  string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Path, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Path, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// HasErrors reports whether any issue has error severity.
func (e *ValidationError) HasErrors() bool {
	for _, issue := range e.Issues {
		if issue.Severity == IssueSeverityError {
			return true
		}
	}
	return false
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var contextParts []string
	for _, k := range keys {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}
