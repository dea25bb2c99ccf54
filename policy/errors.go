package policy

import (
	"fmt"

	"github.com/jmgilman/go/gscript/command"
	"github.com/jmgilman/go/gscript/errors"
)

// InvocationError reports a tool that ran and exited with a non-zero code.
type InvocationError struct {
	// Tool is the tool name.
	Tool string

	// Command is the reconstructed argument vector.
	Command []string

	// ExitCode is the tool's exit code.
	ExitCode int

	// Stderr is the captured error output, if any.
	Stderr string
}

var _ errors.PlatformError = (*InvocationError)(nil)

// Error implements error.
func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("Module run `%s` ended with an error.\nThe subprocess ended with a non-zero return code: %d.",
		command.Line(e.Command), e.ExitCode)
	if e.Stderr != "" {
		return msg + " See the following errors:\n" + e.Stderr
	}
	return msg + " See errors above the traceback or in the error output."
}

// Code implements errors.PlatformError.
func (e *InvocationError) Code() errors.ErrorCode { return errors.CodeInvocationFailed }

// Category implements errors.PlatformError.
func (e *InvocationError) Category() errors.Category { return errors.CategoryInvocation }

// Message implements errors.PlatformError.
func (e *InvocationError) Message() string { return e.Error() }

// Context implements errors.PlatformError.
func (e *InvocationError) Context() map[string]interface{} {
	ctx := map[string]interface{}{
		"tool":      e.Tool,
		"command":   command.Line(e.Command),
		"exit_code": e.ExitCode,
	}
	if e.Stderr != "" {
		ctx["stderr"] = e.Stderr
	}
	return ctx
}

// Unwrap implements errors.PlatformError.
func (e *InvocationError) Unwrap() error { return nil }

// FatalError is returned by the fatal path when raise-on-fatal is set.
type FatalError struct {
	// Msg is the fatal message.
	Msg string
}

var _ errors.PlatformError = (*FatalError)(nil)

// Error implements error.
func (e *FatalError) Error() string { return e.Msg }

// Code implements errors.PlatformError.
func (e *FatalError) Code() errors.ErrorCode { return errors.CodeFatal }

// Category implements errors.PlatformError.
func (e *FatalError) Category() errors.Category { return errors.CategoryInvocation }

// Message implements errors.PlatformError.
func (e *FatalError) Message() string { return e.Msg }

// Context implements errors.PlatformError.
func (e *FatalError) Context() map[string]interface{} { return nil }

// Unwrap implements errors.PlatformError.
func (e *FatalError) Unwrap() error { return nil }

func terminated(code int) error {
	return errors.WithContext(
		errors.Newf(errors.CodeTerminated, "exit with status %d did not terminate the process", code),
		"exit_code", code,
	)
}
