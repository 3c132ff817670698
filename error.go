package pagewatch

import (
	"errors"
	"fmt"
	"strings"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagewatch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrChecksumUnchanged is returned before any filtering when the content
// checksum matches the previous check and skipping was requested.
var ErrChecksumUnchanged = errors.New("checksum unchanged since previous check")

// ToolNotFoundError is returned when a required external conversion tool
// cannot be resolved on the execution path.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("command-line tool %q was not found in system PATH, was it installed?", e.Tool)
}

// FilterNotFoundError is returned when the configured include filters
// matched nothing in the fetched content.
type FilterNotFoundError struct {
	Filters []string
}

func (e *FilterNotFoundError) Error() string {
	return fmt.Sprintf("filters not found in response: %s", strings.Join(e.Filters, ", "))
}

// NoTextError is returned when the fetch succeeded but produced no text
// to compare after filtering.
type NoTextError struct {
	StatusCode int
	HasFilters bool
}

func (e *NoTextError) Error() string {
	if e.HasFilters {
		return fmt.Sprintf("got HTML content (status %d) but no text found after filters were applied", e.StatusCode)
	}
	return fmt.Sprintf("got HTML content (status %d) but no text found", e.StatusCode)
}

// ErrorCode unwraps an application error and returns its code.
// Pipeline error kinds map onto the closest code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var (
		appErr    *Error
		toolErr   *ToolNotFoundError
		filterErr *FilterNotFoundError
		noTextErr *NoTextError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.As(err, &toolErr), errors.As(err, &filterErr):
		return ENOTFOUND
	case errors.As(err, &noTextErr):
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if ErrorCode(err) != EINTERNAL {
		return err.Error()
	}
	return "Internal error"
}
