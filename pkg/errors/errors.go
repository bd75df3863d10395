package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the failure kinds surfaced to the host
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Setting resolution errors
	ErrTypeMismatch      ErrorCode = "TYPE_MISMATCH"
	ErrUnknownTheme      ErrorCode = "UNKNOWN_THEME"
	ErrUnparsableSetting ErrorCode = "UNPARSABLE_SETTING"
	ErrEncoding          ErrorCode = "ENCODING"

	// Theme collection errors
	ErrThemeLoad ErrorCode = "THEME_LOAD"

	// Input errors
	ErrInputType ErrorCode = "INPUT_TYPE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// Detail keys with a meaning shared across packages
const (
	// DetailLabel holds a short human-readable label for the failure
	DetailLabel = "label"
	// DetailLocation holds the source location of the offending value
	DetailLocation = "location"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if loc, ok := e.Details[DetailLocation]; ok && loc != nil {
		msg = fmt.Sprintf("%s (at %v)", msg, loc)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithLabel attaches the short label shown next to the offending value
func (e *Error) WithLabel(label string) *Error {
	return e.WithDetail(DetailLabel, label)
}

// WithLocation attaches the source location of the offending value.
// A nil location leaves the error unchanged.
func (e *Error) WithLocation(loc fmt.Stringer) *Error {
	if loc == nil {
		return e
	}
	return e.WithDetail(DetailLocation, loc)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an Error
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an Error
func GetErrorDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Label returns the label of an error, falling back to its message
func Label(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if label, ok := e.Details[DetailLabel].(string); ok && label != "" {
		return label
	}
	return e.Message
}

// Report is the flattened view of an error used by output renderers
type Report struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Label    string    `json:"label,omitempty"`
	Location string    `json:"location,omitempty"`
	Cause    string    `json:"cause,omitempty"`
}

// ReportOf flattens err. Errors that are not *Error report as UNKNOWN.
func ReportOf(err error) Report {
	var e *Error
	if !errors.As(err, &e) {
		return Report{Code: ErrUnknown, Message: err.Error()}
	}
	r := Report{Code: e.Code, Message: e.Message}
	if label, ok := e.Details[DetailLabel].(string); ok {
		r.Label = label
	}
	if loc, ok := e.Details[DetailLocation]; ok && loc != nil {
		r.Location = fmt.Sprint(loc)
	}
	if e.Wrapped != nil {
		r.Cause = e.Wrapped.Error()
	}
	return r
}
