package errors

// Category groups error codes by how the invocation layer propagates them.
type Category string

const (
	// CategoryLaunch covers failures to locate or start a tool.
	// Launch errors are always surfaced to the caller.
	CategoryLaunch Category = "LAUNCH"

	// CategoryInvocation covers tools that ran and failed.
	// This is the only category whose visibility the caller controls.
	CategoryInvocation Category = "INVOCATION"

	// CategoryUsage covers caller mistakes: bad modes, stream protocol violations.
	CategoryUsage Category = "USAGE"

	// CategoryConfig covers configuration loading and validation failures.
	CategoryConfig Category = "CONFIG"

	// CategoryInternal covers everything else.
	CategoryInternal Category = "INTERNAL"
)

// CallerConfigurable reports whether errors in this category may be hidden
// by the caller's choice of error-handling mode.
func (c Category) CallerConfigurable() bool {
	return c == CategoryInvocation
}

var defaultCategories = map[ErrorCode]Category{
	CodeExecutableNotFound: CategoryLaunch,
	CodeLaunchFailed:       CategoryLaunch,

	CodeInvocationFailed: CategoryInvocation,
	CodeFatal:            CategoryInvocation,
	CodeTerminated:       CategoryInvocation,

	CodeInvalidMode:     CategoryUsage,
	CodeStreamProtocol:  CategoryUsage,
	CodeInvalidInput:    CategoryUsage,
	CodeUnknownEncoding: CategoryUsage,
	CodeNotSupported:    CategoryUsage,

	CodeInvalidConfig:    CategoryConfig,
	CodeConfigLoadFailed: CategoryConfig,

	CodeDecodeFailed: CategoryInternal,
	CodeStreamFailed: CategoryInternal,
	CodeInternal:     CategoryInternal,
	CodeUnknown:      CategoryInternal,
}

// getDefaultCategory returns the category for an error code.
// Unmapped codes fall into CategoryInternal.
func getDefaultCategory(code ErrorCode) Category {
	if c, ok := defaultCategories[code]; ok {
		return c
	}
	return CategoryInternal
}
