package policy

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jmgilman/go/gscript/command"
)

// Invocation identifies the call being resolved.
type Invocation struct {
	// Tool is the tool name.
	Tool string

	// Args is the argument vector the tool was started with.
	Args []string
}

// Line returns the reconstructed command line.
func (i Invocation) Line() string {
	return command.Line(i.Args)
}

func (i Invocation) tool() string {
	if i.Tool != "" {
		return i.Tool
	}
	if len(i.Args) > 0 {
		return i.Args[0]
	}
	return ""
}

// Resolution is the outcome of a resolved invocation that did not fail.
type Resolution struct {
	// ExitCode is the tool's exit code.
	ExitCode int

	// Status is set in status mode: the caller returns ExitCode instead of
	// its own result.
	Status bool
}

// Reporter reports an error message to the user, typically through the
// message tool of the host environment.
type Reporter interface {
	ReportError(ctx context.Context, msg string) error
}

// Resolver applies an error-handling mode to an exit code.
type Resolver struct {
	state    *State
	reporter Reporter
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithReporter sets the reporter used by the fatal path. Without one the
// message is written to the state's stderr.
func WithReporter(r Reporter) ResolverOption {
	return func(res *Resolver) {
		res.reporter = r
	}
}

// NewResolver creates a Resolver reading state. A nil state means Default().
func NewResolver(state *State, opts ...ResolverOption) *Resolver {
	if state == nil {
		state = Default()
	}
	r := &Resolver{state: state}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the policy state the resolver reads.
func (r *Resolver) State() *State {
	return r.state
}

// Resolve applies mode to a finished invocation. An empty mode is
// ModeRaise; an unknown mode is a usage error regardless of code.
func (r *Resolver) Resolve(ctx context.Context, code int, inv Invocation, mode Mode, stderr string) (Resolution, error) {
	m := Mode(strings.ToLower(string(mode)))
	if m == "" {
		m = ModeRaise
	}
	if !m.Valid() {
		return Resolution{}, invalidMode(string(mode))
	}

	logger := r.state.logger
	switch {
	case m == ModeStatus:
		return Resolution{ExitCode: code, Status: true}, nil
	case code == 0:
		return Resolution{}, nil
	case m == ModeIgnore:
		logger.Debug(ctx, "ignoring non-zero exit code", "tool", inv.tool(), "exit_code", code)
		return Resolution{ExitCode: code}, nil
	case m == ModeFatal:
		msg := fmt.Sprintf("Module %s (%s) failed with non-zero return code %d", inv.tool(), inv.Line(), code)
		return Resolution{ExitCode: code}, r.Fatal(ctx, msg)
	case m == ModeExit:
		if stderr != "" {
			if !strings.HasSuffix(stderr, "\n") {
				stderr += "\n"
			}
			_, _ = io.WriteString(r.state.stderr, stderr)
		}
		logger.Debug(ctx, "exiting with tool exit code", "tool", inv.tool(), "exit_code", code)
		r.state.Exit(code)
		return Resolution{ExitCode: code}, terminated(code)
	default:
		return Resolution{ExitCode: code}, &InvocationError{
			Tool:     inv.tool(),
			Command:  inv.Args,
			ExitCode: code,
			Stderr:   stderr,
		}
	}
}

// Fatal takes the fatal path for msg. With raise-on-fatal set it returns a
// *FatalError. Otherwise msg is reported and the host exits with status 1;
// Fatal returns only if the exit function does.
func (r *Resolver) Fatal(ctx context.Context, msg string) error {
	if r.state.RaiseOnFatal() {
		return &FatalError{Msg: msg}
	}

	if r.reporter != nil {
		if err := r.reporter.ReportError(ctx, msg); err != nil {
			fmt.Fprintf(r.state.stderr, "ERROR: %s\n", msg)
		}
	} else {
		fmt.Fprintf(r.state.stderr, "ERROR: %s\n", msg)
	}

	r.state.logger.Error(ctx, "fatal error", "message", msg)
	r.state.Exit(1)
	return terminated(1)
}
