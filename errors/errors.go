package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kinds of failure the command line distinguishes between.
var (
	ErrUsage      = new(ErrCodeUsage, "invalid arguments")
	ErrParse      = new(ErrCodeParse, "document parse error")
	ErrValidation = new(ErrCodeValidation, "configuration validation error")
	ErrSystem     = new(ErrCodeSystemError, "system error")
)

const (
	ErrCodeUsage       = "usage_error"
	ErrCodeParse       = "parse_error"
	ErrCodeValidation  = "validation_error"
	ErrCodeSystemError = "system_error"
)

// InternalError is a sentinel for one kind of failure.
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join combines several errors into one; nil entries are skipped.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsUsage checks if an error is a command line argument error
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

// IsParse checks if an error is a document parse error
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsValidation checks if an error is a configuration validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSystem checks if an error is an I/O or rendering error
func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}

// GetHint returns the first user-facing hint attached to err, or an empty
// string.
func GetHint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}

	return hints[0]
}
