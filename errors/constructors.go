package errors

import "fmt"

// New creates a new PlatformError with the given code and message.
// The category is derived from the code.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidMode, "unknown error handling mode")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:     code,
		category: getDefaultCategory(code),
		message:  message,
	}
}

// Newf creates a new PlatformError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeExecutableNotFound, "cannot find the executable %s", name)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
