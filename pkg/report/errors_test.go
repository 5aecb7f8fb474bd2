package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "StructureError",
			err:     &StructureError{Op: "add element", Element: "band[detail]", Cause: ErrNilElement},
			wantMsg: "structure error during add element on band[detail]: element must not be nil",
		},
		{
			name:    "StructureError without element",
			err:     &StructureError{Op: "add group", Cause: ErrIllegalGroup},
			wantMsg: "structure error during add group: group type is not allowed for this body",
		},
		{
			name:    "ContextError",
			err:     WithContext(errors.New("boom"), "load", map[string]interface{}{"key": "sales", "attempt": 2}),
			wantMsg: "load [attempt=2, key=sales]: boom",
		},
		{
			name:    "ContextError without context",
			err:     WithContext(errors.New("boom"), "load", nil),
			wantMsg: "load: boom",
		},
		{
			name: "ValidationError single",
			err: &ValidationError{Issues: []ValidationIssue{
				{Severity: IssueSeverityError, Path: "master-report[sales]", Message: "broken"},
			}},
			wantMsg: "validation error: master-report[sales] - broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}

func TestStructureErrorsFromSetters(t *testing.T) {
	band := NewBand()
	band.SetName("detail")
	err := band.AddElement(nil)

	require.True(t, IsStructureError(err), "Expected a structure error, got %T", err)
	assert.ErrorIs(t, err, ErrNilElement)
	var se *StructureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "band[detail]", se.Element)
	assert.False(t, IsStructureError(errors.New("plain")), "plain error reported as structure error")
}

func TestMultiError(t *testing.T) {
	m := NewMultiError()
	assert.NoError(t, m.Err(), "Expected nil for an empty collector")

	m.Add(nil)
	m.Add(ErrLoopDetected)
	assert.Equal(t, ErrLoopDetected, m.Err(), "Expected the single error itself")

	m.Add(ErrIllegalBody)
	err := m.Err()
	assert.Equal(t, 2, m.Len())
	assert.ErrorIs(t, err, ErrIllegalBody)
	assert.ErrorIs(t, err, ErrLoopDetected)
	assert.Regexp(t, `^2 errors occurred:`, err.Error())
}

func TestValidationErrorHasErrors(t *testing.T) {
	warnings := &ValidationError{Issues: []ValidationIssue{{Severity: IssueSeverityWarning}}}
	assert.False(t, warnings.HasErrors(), "warnings only reported errors")
	mixed := &ValidationError{Issues: []ValidationIssue{{Severity: IssueSeverityWarning}, {Severity: IssueSeverityError}}}
	assert.True(t, mixed.HasErrors(), "error issue not detected")
	assert.Regexp(t, `^2 validation issues:`, mixed.Error())
}
