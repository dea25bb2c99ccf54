package errors

import "fmt"

// Wrap wraps an error with a code and message while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// The category always follows the new code: wrapping an OS error from
// cmd.Start() in CodeLaunchFailed makes it a launch error.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := cmd.Start(); err != nil {
//	    return errors.Wrap(err, errors.CodeLaunchFailed, "failed to start process")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	return &platformError{
		code:     code,
		category: getDefaultCategory(code),
		message:  message,
		cause:    err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the original error.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := cmd.Start(); err != nil {
//	    return errors.WrapWithContext(err, errors.CodeLaunchFailed, "failed to start process", map[string]interface{}{
//	        "executable": path,
//	    })
//	}
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	return &platformError{
		code:     code,
		category: getDefaultCategory(code),
		message:  message,
		context:  copyContext(ctx),
		cause:    err,
	}
}
