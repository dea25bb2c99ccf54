package policy

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/gscript/errors"
)

// exitCalled is the panic value used by trapExit to stop at the exit point.
type exitCalled int

// trapExit makes the state's exit function panic so the test observes that
// nothing after it runs, and returns the code it was called with.
func trapExit(t *testing.T, state *State, fn func()) (code int, exited bool) {
	t.Helper()
	state.SetExit(func(c int) { panic(exitCalled(c)) })
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCalled)
			if !ok {
				panic(r)
			}
			code, exited = int(c), true
		}
	}()
	fn()
	return 0, false
}

type recordingReporter struct {
	messages []string
	err      error
}

func (r *recordingReporter) ReportError(_ context.Context, msg string) error {
	r.messages = append(r.messages, msg)
	return r.err
}

var inv = Invocation{Tool: "r.slope.aspect", Args: []string{"r.slope.aspect", "elevation=dem", "slope=slope"}}

func TestResolve_ZeroExitCode(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(NewState())

	for _, mode := range []Mode{"", ModeRaise, ModeFatal, ModeExit, ModeIgnore} {
		t.Run(string(mode), func(t *testing.T) {
			res, err := r.Resolve(ctx, 0, inv, mode, "")
			require.NoError(t, err)
			assert.Equal(t, Resolution{}, res)
			assert.False(t, res.Status)
		})
	}

	res, err := r.Resolve(ctx, 0, inv, ModeStatus, "")
	require.NoError(t, err)
	assert.Equal(t, Resolution{ExitCode: 0, Status: true}, res)
}

func TestResolve_Status(t *testing.T) {
	res, err := NewResolver(NewState()).Resolve(context.Background(), 2, inv, ModeStatus, "boom")
	require.NoError(t, err)
	assert.True(t, res.Status)
	assert.Equal(t, 2, res.ExitCode)
}

func TestResolve_Ignore(t *testing.T) {
	res, err := NewResolver(NewState()).Resolve(context.Background(), 7, inv, ModeIgnore, "boom")
	require.NoError(t, err)
	assert.False(t, res.Status)
	assert.Equal(t, 7, res.ExitCode)
}

func TestResolve_Raise(t *testing.T) {
	r := NewResolver(NewState())

	for _, mode := range []Mode{"", ModeRaise, "RAISE"} {
		t.Run(string(mode), func(t *testing.T) {
			_, err := r.Resolve(context.Background(), 3, inv, mode, "ERROR: no such map")
			require.Error(t, err)

			var invErr *InvocationError
			require.True(t, stderrors.As(err, &invErr))
			assert.Equal(t, 3, invErr.ExitCode)
			assert.Equal(t, "r.slope.aspect", invErr.Tool)
			assert.Equal(t, inv.Args, invErr.Command)
			assert.Equal(t, "ERROR: no such map", invErr.Stderr)

			assert.True(t, errors.IsInvocation(err))
			assert.Equal(t, errors.CodeInvocationFailed, errors.GetCode(err))
			assert.Contains(t, err.Error(), "r.slope.aspect elevation=dem slope=slope")
			assert.Contains(t, err.Error(), "ERROR: no such map")
		})
	}
}

func TestResolve_InvalidMode(t *testing.T) {
	r := NewResolver(NewState())

	for _, code := range []int{0, 1} {
		_, err := r.Resolve(context.Background(), code, inv, "explode", "")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidMode, errors.GetCode(err))
		assert.True(t, errors.IsUsage(err))
		assert.False(t, errors.IsInvocation(err))
	}
}

func TestResolve_Exit(t *testing.T) {
	var stderr bytes.Buffer
	state := NewState(WithStderr(&stderr))
	r := NewResolver(state)

	var returned error
	code, exited := trapExit(t, state, func() {
		_, returned = r.Resolve(context.Background(), 4, inv, ModeExit, "ERROR: failed")
	})

	require.True(t, exited)
	assert.Equal(t, 4, code)
	assert.NoError(t, returned)
	assert.Equal(t, "ERROR: failed\n", stderr.String())
}

func TestResolve_ExitWithoutStderr(t *testing.T) {
	var stderr bytes.Buffer
	var got []int
	state := NewState(WithStderr(&stderr), WithExit(func(c int) { got = append(got, c) }))

	_, err := NewResolver(state).Resolve(context.Background(), 9, inv, ModeExit, "")
	assert.Equal(t, []int{9}, got)
	assert.Empty(t, stderr.String())

	// The exit function returned, which the caller must still see.
	require.Error(t, err)
	assert.Equal(t, errors.CodeTerminated, errors.GetCode(err))
}

func TestResolve_FatalRaises(t *testing.T) {
	state := NewState()
	state.SetRaiseOnFatal(true)
	reporter := &recordingReporter{}

	_, err := NewResolver(state, WithReporter(reporter)).Resolve(context.Background(), 1, inv, ModeFatal, "")
	require.Error(t, err)

	var fatal *FatalError
	require.True(t, stderrors.As(err, &fatal))
	assert.Equal(t,
		"Module r.slope.aspect (r.slope.aspect elevation=dem slope=slope) failed with non-zero return code 1",
		fatal.Error())
	assert.Equal(t, errors.CodeFatal, errors.GetCode(err))
	assert.Empty(t, reporter.messages)
}

func TestResolve_FatalExits(t *testing.T) {
	var stderr bytes.Buffer
	state := NewState(WithStderr(&stderr))
	reporter := &recordingReporter{}
	r := NewResolver(state, WithReporter(reporter))

	code, exited := trapExit(t, state, func() {
		_, _ = r.Resolve(context.Background(), 5, inv, ModeFatal, "")
	})

	require.True(t, exited)
	assert.Equal(t, 1, code)
	require.Len(t, reporter.messages, 1)
	assert.Contains(t, reporter.messages[0], "failed with non-zero return code 5")
	assert.Empty(t, stderr.String())
}

func TestFatal_ReporterFailureFallsBackToStderr(t *testing.T) {
	var stderr bytes.Buffer
	var got []int
	state := NewState(WithStderr(&stderr), WithExit(func(c int) { got = append(got, c) }))
	reporter := &recordingReporter{err: stderrors.New("g.message not found")}

	err := NewResolver(state, WithReporter(reporter)).Fatal(context.Background(), "cannot continue")
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, "ERROR: cannot continue\n", stderr.String())
	assert.Equal(t, errors.CodeTerminated, errors.GetCode(err))
}

func TestInvocationError_WithoutStderr(t *testing.T) {
	err := &InvocationError{Tool: "g.copy", Command: []string{"g.copy", "raster=a,b"}, ExitCode: 1}
	assert.Equal(t,
		"Module run `g.copy raster=a,b` ended with an error.\nThe subprocess ended with a non-zero return code: 1. "+
			"See errors above the traceback or in the error output.",
		err.Error())
	assert.Equal(t, 1, err.Context()["exit_code"])
	assert.NotContains(t, err.Context(), "stderr")
}

func TestNewResolver_DefaultState(t *testing.T) {
	assert.Same(t, Default(), NewResolver(nil).State())
}
