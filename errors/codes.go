package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Launch errors.

	// CodeExecutableNotFound indicates the tool could not be resolved on PATH.
	CodeExecutableNotFound ErrorCode = "EXECUTABLE_NOT_FOUND"

	// CodeLaunchFailed indicates the operating system refused to start the process.
	CodeLaunchFailed ErrorCode = "LAUNCH_FAILED"

	// Invocation errors.

	// CodeInvocationFailed indicates the tool ran and returned a non-zero exit code.
	CodeInvocationFailed ErrorCode = "INVOCATION_FAILED"

	// CodeFatal indicates the fatal diagnostic path was taken with raise-on-fatal set.
	CodeFatal ErrorCode = "FATAL"

	// CodeTerminated indicates the exit path was taken but the host process kept running.
	// This only happens when the termination hook has been replaced (tests).
	CodeTerminated ErrorCode = "TERMINATED"

	// Usage errors.

	// CodeInvalidMode indicates an unrecognized error-handling mode.
	CodeInvalidMode ErrorCode = "INVALID_MODE"

	// CodeStreamProtocol indicates a write that does not match the stream mode.
	CodeStreamProtocol ErrorCode = "STREAM_PROTOCOL"

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeUnknownEncoding indicates a text encoding name that cannot be resolved.
	CodeUnknownEncoding ErrorCode = "UNKNOWN_ENCODING"

	// CodeNotSupported indicates the operation is unavailable on this platform.
	CodeNotSupported ErrorCode = "NOT_SUPPORTED"

	// Configuration errors.

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeConfigLoadFailed indicates a configuration or environment file could not be read.
	CodeConfigLoadFailed ErrorCode = "CONFIG_LOAD_FAILED"

	// System errors.

	// CodeDecodeFailed indicates process output could not be decoded.
	CodeDecodeFailed ErrorCode = "DECODE_FAILED"

	// CodeStreamFailed indicates reading from or writing to a process stream failed.
	CodeStreamFailed ErrorCode = "STREAM_FAILED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
