package script

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmgilman/go/gscript/command"
	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
)

const tracerName = "github.com/jmgilman/go/gscript/script"

// Session runs tools under one execution policy.
type Session struct {
	starter     exec.Starter
	builder     *command.Builder
	state       *policy.State
	resolver    *policy.Resolver
	levelSource policy.LevelSource
	defaultMode policy.Mode
	defaults    []exec.Option
	logger      *logging.Logger
	tracer      trace.Tracer
	stdout      io.Writer
	stderr      io.Writer

	noLevelSource bool
}

// Option configures a Session.
type Option func(*Session)

// WithStarter sets the process launcher. Defaults to exec.New().
func WithStarter(starter exec.Starter) Option {
	return func(s *Session) {
		s.starter = starter
	}
}

// WithState sets the execution policy state. Defaults to policy.Default().
func WithState(state *policy.State) Option {
	return func(s *Session) {
		s.state = state
	}
}

// WithLevelSource sets where the debug level is read from. Defaults to
// GisenvLevelSource; nil disables lookup so the level is always 0.
func WithLevelSource(src policy.LevelSource) Option {
	return func(s *Session) {
		s.levelSource = src
		s.noLevelSource = src == nil
	}
}

// WithDefaultMode sets the error-handling mode of calls that do not select
// one. Defaults to policy.ModeRaise.
func WithDefaultMode(mode policy.Mode) Option {
	return func(s *Session) {
		s.defaultMode = mode
	}
}

// WithLaunchDefaults sets launcher options applied to every call before the
// call's own.
func WithLaunchDefaults(opts ...exec.Option) Option {
	return func(s *Session) {
		s.defaults = append(s.defaults, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTracer sets the tracer. Defaults to the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// WithOutput sets where relayed tool output and debug lines are written.
// Defaults to os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Session) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// NewSession creates a Session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		defaultMode: policy.ModeRaise,
		logger:      logging.NewNopLogger(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.state == nil {
		s.state = policy.Default()
	}
	if s.starter == nil {
		s.starter = exec.New(exec.WithLogger(s.logger))
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.levelSource == nil && !s.noLevelSource {
		s.levelSource = GisenvLevelSource{Session: s}
	}
	s.builder = command.NewBuilder(
		command.WithLogger(s.logger),
		command.WithWarner(func(msg string) { _ = s.Warning(context.Background(), msg) }),
	)
	s.resolver = policy.NewResolver(s.state, policy.WithReporter(s))
	return s
}

// State returns the execution policy state.
func (s *Session) State() *policy.State {
	return s.state
}

// Resolver returns the error policy resolver.
func (s *Session) Resolver() *policy.Resolver {
	return s.resolver
}

// DebugLevel returns the memoized debug level.
func (s *Session) DebugLevel(ctx context.Context) int {
	return s.state.DebugLevel(ctx, s.levelSource, false)
}

// Build returns the argument vector a call would run with.
func (s *Session) Build(tool string, opts ...CallOption) []string {
	req := newRequest(s.defaultMode, opts)
	return s.builder.Build(tool, req.flags, req.opts)
}
