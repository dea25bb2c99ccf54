//go:build unix

package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/policy"
)

// harness is a Session whose tools live in a private directory and whose
// streams are captured.
type harness struct {
	session *Session
	state   *policy.State
	dir     string

	// stdout and stderr receive what inherited child streams write.
	stdout *bytes.Buffer
	stderr *bytes.Buffer

	// out and errOut receive what the session itself writes.
	out    *bytes.Buffer
	errOut *bytes.Buffer

	// stateErr receives what the policy state writes.
	stateErr *bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		dir:      t.TempDir(),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		stateErr: &bytes.Buffer{},
	}
	h.state = policy.NewState(policy.WithStderr(h.stateErr))

	env := exec.Ambient().Merge(map[string]string{
		"PATH": h.dir + string(os.PathListSeparator) + os.Getenv("PATH"),
	})
	base := []Option{
		WithStarter(exec.New(exec.WithParentStreams(nil, h.stdout, h.stderr))),
		WithState(h.state),
		WithLevelSource(nil),
		WithLaunchDefaults(exec.WithEnv(env)),
		WithOutput(h.out, h.errOut),
	}
	h.session = NewSession(append(base, opts...)...)
	return h
}

// tool installs an executable shell script named name.
func (h *harness) tool(t *testing.T, name, body string) {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

// exitCalled is the panic value trapExit uses to stop at the exit point.
type exitCalled int

// trapExit makes the state's exit function panic so nothing after it runs,
// and returns the code it was called with.
func trapExit(t *testing.T, state *policy.State, fn func()) (code int, exited bool) {
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

const echoArgs = `for a in "$@"; do printf '%s\n' "$a"; done`
