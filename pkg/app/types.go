package app

import (
	"fmt"
	"os"
	"strings"
)

// Payload is a command line data argument: "@path" reads a file, anything
// else is taken as literal text.
type Payload string

// IsFile reports whether the payload names a file.
func (p Payload) IsFile() bool {
	return strings.HasPrefix(string(p), "@") && len(p) > 1
}

// Bytes returns the payload data.
func (p Payload) Bytes() ([]byte, error) {
	if !p.IsFile() {
		return []byte(p), nil
	}
	path := string(p[1:])
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(ErrCodeInvalidInput, fmt.Sprintf("cannot read %s", path), err)
	}
	return data, nil
}

// String returns the payload as given on the command line.
func (p Payload) String() string {
	return string(p)
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeEncodeFailed = "ENCODE_FAILED"
	ErrCodeOutputFailed = "OUTPUT_FAILED"
	ErrCodeConfig       = "CONFIG"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
