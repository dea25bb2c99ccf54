package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new PlatformError with the context field added.
// Existing context fields are preserved.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeLaunchFailed, "failed to start process")
//	err = errors.WithContext(err, "executable", "/usr/bin/g.region")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}

	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	platformErr := toPlatformError(err)

	merged := make(map[string]interface{})
	for k, v := range platformErr.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &platformError{
		code:     platformErr.Code(),
		category: platformErr.Category(),
		message:  platformErr.Message(),
		context:  merged,
		cause:    platformErr.Unwrap(),
	}
}

// WithCategory overrides the category of an error.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithCategory(err error, category Category) PlatformError {
	if err == nil {
		return nil
	}

	platformErr := toPlatformError(err)

	return &platformError{
		code:     platformErr.Code(),
		category: category,
		message:  platformErr.Message(),
		context:  platformErr.Context(),
		cause:    platformErr.Unwrap(),
	}
}

func toPlatformError(err error) PlatformError {
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		return platformErr
	}
	return &platformError{
		code:     CodeUnknown,
		category: CategoryInternal,
		message:  err.Error(),
		cause:    err,
	}
}
