package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not a PlatformError.
//
// The code of the outermost PlatformError in the chain wins.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeExecutableNotFound {
//	    // tool is not installed
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}

	return CodeUnknown
}

// GetCategory extracts the Category from an error.
// Returns CategoryInternal if the error is nil or not a PlatformError.
func GetCategory(err error) Category {
	if err == nil {
		return CategoryInternal
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Category()
	}

	return CategoryInternal
}

// IsLaunch reports whether err means the tool never started.
func IsLaunch(err error) bool {
	return err != nil && GetCategory(err) == CategoryLaunch
}

// IsInvocation reports whether err means the tool ran and failed.
func IsInvocation(err error) bool {
	return err != nil && GetCategory(err) == CategoryInvocation
}

// IsUsage reports whether err is a caller-side usage error.
func IsUsage(err error) bool {
	return err != nil && GetCategory(err) == CategoryUsage
}
