package exec

import (
	"context"
)

//go:generate go run github.com/matryer/moq@latest -out mocks/starter.go -pkg mocks . Starter

// Starter is the interface the invocation layer uses to launch tools.
// *Launcher implements it; tests substitute mocks.Starter.
type Starter interface {
	// Start resolves args[0], launches it with args[1:] and returns the live
	// process handle. The caller must Wait, Communicate or Close it.
	Start(ctx context.Context, args []string, opts ...Option) (*Process, error)

	// Exec replaces the current process with the tool. It returns only when
	// the tool could not be resolved or launched.
	Exec(ctx context.Context, args []string, opts ...Option) error
}

// Stream selects what a child's standard stream is connected to.
type Stream int

const (
	// Inherit connects the stream to the launcher's own stream.
	Inherit Stream = iota

	// Pipe creates a pipe the caller reads from or writes to through the
	// Process handle.
	Pipe

	// Discard connects the stream to the null device.
	Discard
)

// String returns the lowercase name of the stream kind.
func (s Stream) String() string {
	switch s {
	case Inherit:
		return "inherit"
	case Pipe:
		return "pipe"
	case Discard:
		return "discard"
	default:
		return "unknown"
	}
}
