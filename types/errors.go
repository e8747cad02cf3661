package types

import (
	"errors"
	"fmt"
)

// PDFErrorCode represents categorized error codes for document operations
type PDFErrorCode string

const (
	// Source errors
	ErrCodeNotFound      PDFErrorCode = "NOT_FOUND"
	ErrCodeInvalidFormat PDFErrorCode = "INVALID_FORMAT"

	// Precondition errors
	ErrCodeRange           PDFErrorCode = "OUT_OF_RANGE"
	ErrCodeInvalidArgument PDFErrorCode = "INVALID_ARGUMENT"

	// I/O errors
	ErrCodeIOError PDFErrorCode = "IO_ERROR"
)

// Parameter names used to tag precondition errors.
const (
	ParamPageNumber  = "pageNumber"
	ParamRotateAngle = "rotateAngle"
	ParamPageNumbers = "pageNumbers"
	ParamOthers      = "others"
	ParamRanges      = "ranges"
	ParamPagesPer    = "pagesPerDocument"
)

// PDFError is a structured error type for document operations
type PDFError struct {
	Code    PDFErrorCode           // Error category code
	Message string                 // Human-readable message
	Param   string                 // Offending parameter name (range and argument errors)
	Cause   error                  // Underlying error (if any)
	Context map[string]interface{} // Additional context (page number, path, etc.)
}

// Error implements the error interface
func (e *PDFError) Error() string {
	msg := e.Message
	if e.Param != "" {
		msg = e.Param + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *PDFError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target PDFError by code
func (e *PDFError) Is(target error) bool {
	if t, ok := target.(*PDFError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error and returns the same error for chaining
func (e *PDFError) WithContext(key string, value interface{}) *PDFError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewPDFError creates a new PDFError with the given code and message
func NewPDFError(code PDFErrorCode, message string) *PDFError {
	return &PDFError{
		Code:    code,
		Message: message,
	}
}

// NewPDFErrorf creates a new PDFError with a formatted message
func NewPDFErrorf(code PDFErrorCode, format string, args ...interface{}) *PDFError {
	return &PDFError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a PDFError
func WrapError(code PDFErrorCode, message string, cause error) *PDFError {
	return &PDFError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapErrorf wraps an existing error with a PDFError and formatted message
func WrapErrorf(code PDFErrorCode, cause error, format string, args ...interface{}) *PDFError {
	return &PDFError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// NewRangeError reports a value outside its contract, tagged with the parameter name.
func NewRangeError(param string, format string, args ...interface{}) *PDFError {
	return &PDFError{
		Code:    ErrCodeRange,
		Param:   param,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewArgumentError reports a structurally invalid call, tagged with the parameter name.
func NewArgumentError(param string, message string) *PDFError {
	return &PDFError{
		Code:    ErrCodeInvalidArgument,
		Param:   param,
		Message: message,
	}
}

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound      = &PDFError{Code: ErrCodeNotFound}
	ErrInvalidFormat = &PDFError{Code: ErrCodeInvalidFormat}
	ErrRange         = &PDFError{Code: ErrCodeRange}
	ErrArgument      = &PDFError{Code: ErrCodeInvalidArgument}
	ErrIOError       = &PDFError{Code: ErrCodeIOError}
)

// IsPDFError reports whether err is, or wraps, a PDFError and returns it
func IsPDFError(err error) (*PDFError, bool) {
	var pdfErr *PDFError
	if errors.As(err, &pdfErr) {
		return pdfErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a PDFError
func GetErrorCode(err error) (PDFErrorCode, bool) {
	if pdfErr, ok := IsPDFError(err); ok {
		return pdfErr.Code, true
	}
	return "", false
}

// ParamOf returns the parameter a range or argument error is tagged with.
func ParamOf(err error) string {
	if pdfErr, ok := IsPDFError(err); ok {
		return pdfErr.Param
	}
	return ""
}

// IsNotFound checks if the error is a missing source error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionError checks if the error was raised before any mutation
// because of caller input (range or argument errors)
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrRange) || errors.Is(err, ErrArgument)
}
