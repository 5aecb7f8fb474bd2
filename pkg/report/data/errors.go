package data

import (
	"errors"
	"fmt"
	"time"
)

// ErrQueryNotFound is the cause of a ReportDataFactoryError raised when no
// factory can answer a query.
var ErrQueryNotFound = errors.New("query not found")

// ReportDataFactoryError reports a failure to resolve or execute a query.
type ReportDataFactoryError struct {
	Query   string
	Message string
	Cause   error
}

func (e *ReportDataFactoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("data factory error for query '%s': %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("data factory error for query '%s': %s", e.Query, e.Message)
}

func (e *ReportDataFactoryError) Unwrap() error {
	return e.Cause
}

// NewReportDataFactoryError creates a data factory error.
func NewReportDataFactoryError(query, message string, cause error) error {
	return &ReportDataFactoryError{Query: query, Message: message, Cause: cause}
}

// NewQueryNotFoundError creates the error returned when no factory claims a query.
func NewQueryNotFoundError(query string) error {
	return &ReportDataFactoryError{
		Query:   query,
		Message: "no data factory can execute the query",
		Cause:   ErrQueryNotFound,
	}
}

// QueryTimeoutError reports that a query exceeded its timeout.
type QueryTimeoutError struct {
	Query   string
	Timeout time.Duration
	Cause   error
}

func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("query '%s' timed out after %s", e.Query, e.Timeout)
}

func (e *QueryTimeoutError) Unwrap() error {
	return e.Cause
}

// IsReportDataFactoryError checks if an error is a data factory error.
func IsReportDataFactoryError(err error) bool {
	var target *ReportDataFactoryError
	return errors.As(err, &target)
}

// IsQueryTimeout checks if an error was caused by an exceeded query timeout.
func IsQueryTimeout(err error) bool {
	var target *QueryTimeoutError
	return errors.As(err, &target)
}

// IsQueryNotFound checks if an error was caused by an unresolvable query.
func IsQueryNotFound(err error) bool {
	return errors.Is(err, ErrQueryNotFound)
}
