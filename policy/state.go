package policy

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/jmgilman/go/gscript/internal/logging"
)

// MaxDebugLevel is the highest supported debug level.
const MaxDebugLevel = 5

// LevelSource supplies the debug level when State has none cached.
type LevelSource interface {
	DebugLevel(ctx context.Context) (int, error)
}

// LevelSourceFunc adapts a function to LevelSource.
type LevelSourceFunc func(ctx context.Context) (int, error)

// DebugLevel implements LevelSource.
func (f LevelSourceFunc) DebugLevel(ctx context.Context) (int, error) {
	return f(ctx)
}

// State is the execution policy shared by the invocations of a process.
// Its fields are safe for concurrent use.
type State struct {
	raiseOnFatal  atomic.Bool
	captureStderr atomic.Bool
	debugLevel    atomic.Int64
	debugCached   atomic.Bool
	exit          atomic.Pointer[func(int)]

	stderr io.Writer
	logger *logging.Logger
}

// StateOption configures a State.
type StateOption func(*State)

// WithStderr sets the stream warnings and exit-mode error text are written
// to. Defaults to os.Stderr.
func WithStderr(w io.Writer) StateOption {
	return func(s *State) {
		s.stderr = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

// WithExit sets the function that terminates the host. Defaults to os.Exit.
func WithExit(exit func(int)) StateOption {
	return func(s *State) {
		s.SetExit(exit)
	}
}

// NewState creates a State with raise-on-fatal and stderr capture off.
func NewState(opts ...StateOption) *State {
	s := &State{
		stderr: os.Stderr,
		logger: logging.NewNopLogger(),
	}
	s.SetExit(os.Exit)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultState = NewState()

// Default returns the process-wide State.
func Default() *State {
	return defaultState
}

// SetRaiseOnFatal sets whether the fatal path returns a *FatalError instead
// of terminating the host. It returns the previous value.
func (s *State) SetRaiseOnFatal(raise bool) bool {
	return s.raiseOnFatal.Swap(raise)
}

// RaiseOnFatal reports whether the fatal path returns an error.
func (s *State) RaiseOnFatal() bool {
	return s.raiseOnFatal.Load()
}

// SetCaptureStderr sets whether blocking invocations capture stderr and
// relay it on failure. It returns the previous value.
func (s *State) SetCaptureStderr(capture bool) bool {
	return s.captureStderr.Swap(capture)
}

// CaptureStderr reports whether blocking invocations capture stderr.
func (s *State) CaptureStderr() bool {
	return s.captureStderr.Load()
}

// DebugLevel returns the cached debug level, asking src when nothing is
// cached or force is set. While src runs the level reads as 0, so src may
// itself start tools. Levels outside 0..MaxDebugLevel and source errors are
// reported as a warning and become 0.
func (s *State) DebugLevel(ctx context.Context, src LevelSource, force bool) int {
	if !force && s.debugCached.Load() {
		return int(s.debugLevel.Load())
	}

	s.debugLevel.Store(0)
	s.debugCached.Store(true)
	if src == nil {
		return 0
	}

	level, err := src.DebugLevel(ctx)
	if err == nil && (level < 0 || level > MaxDebugLevel) {
		err = fmt.Errorf("debug level %d", level)
	}
	if err != nil {
		fmt.Fprintf(s.stderr, "WARNING: Ignoring unsupported debug level (must be >=0 and <=%d). %v\n", MaxDebugLevel, err)
		s.logger.Warn(ctx, "ignoring unsupported debug level", "error", err.Error())
		return 0
	}

	s.debugLevel.Store(int64(level))
	return level
}

// ResetDebugLevel drops the cached debug level.
func (s *State) ResetDebugLevel() {
	s.debugCached.Store(false)
	s.debugLevel.Store(0)
}

// SetExit replaces the function used to terminate the host and returns the
// previous one. A nil exit restores os.Exit.
func (s *State) SetExit(exit func(int)) func(int) {
	if exit == nil {
		exit = os.Exit
	}
	prev := s.exit.Swap(&exit)
	if prev == nil {
		return nil
	}
	return *prev
}

// Exit terminates the host with code through the configured exit function.
// It returns only when that function does.
func (s *State) Exit(code int) {
	(*s.exit.Load())(code)
}

// Stderr returns the stream warnings are written to.
func (s *State) Stderr() io.Writer {
	return s.stderr
}

// Logger returns the state's logger.
func (s *State) Logger() *logging.Logger {
	return s.logger
}
