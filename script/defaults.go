package script

import (
	"context"
	"sync"

	"github.com/jmgilman/go/gscript/exec"
)

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns the process-wide Session. It uses policy.Default() as
// its state and launches tools with exec.New().
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = NewSession()
	})
	return defaultSession
}

// Start calls Start on the default session.
func Start(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return Default().Start(ctx, tool, opts...)
}

// Run calls Run on the default session.
func Run(ctx context.Context, tool string, opts ...CallOption) (int, error) {
	return Default().Run(ctx, tool, opts...)
}

// Pipe calls Pipe on the default session.
func Pipe(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return Default().Pipe(ctx, tool, opts...)
}

// Feed calls Feed on the default session.
func Feed(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return Default().Feed(ctx, tool, opts...)
}

// Read calls Read on the default session.
func Read(ctx context.Context, tool string, opts ...CallOption) (string, error) {
	return Default().Read(ctx, tool, opts...)
}

// Write calls Write on the default session.
func Write(ctx context.Context, tool, stdin string, opts ...CallOption) (int, error) {
	return Default().Write(ctx, tool, stdin, opts...)
}

// Exec calls Exec on the default session.
func Exec(ctx context.Context, tool string, opts ...CallOption) error {
	return Default().Exec(ctx, tool, opts...)
}

// Message calls Message on the default session.
func Message(ctx context.Context, msg, flag string) error {
	return Default().Message(ctx, msg, flag)
}

// Fatal calls Fatal on the default session.
func Fatal(ctx context.Context, msg string) error {
	return Default().Fatal(ctx, msg)
}
