//go:build unix

package exec

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/gscript/errors"
)

func sh(script string) []string {
	return []string{"sh", "-c", script}
}

func TestStart_Communicate(t *testing.T) {
	l := New()
	p, err := l.Start(context.Background(), sh("echo out; echo err >&2"),
		WithStdout(Pipe), WithStderr(Pipe))
	require.NoError(t, err)
	require.True(t, p.Implied())
	require.Equal(t, AutoText, p.Mode())
	require.Positive(t, p.Pid())

	stdout, stderr, code, err := p.Communicate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "out\n", string(stdout))
	assert.Equal(t, "err\n", string(stderr))
}

func TestStart_NonZeroExitIsNotAnError(t *testing.T) {
	p, err := New().Start(context.Background(), sh("exit 3"))
	require.NoError(t, err)

	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 3, code)

	code, err = p.Wait()
	require.NoError(t, err)
	require.Equal(t, 3, code, "Wait must be repeatable")
}

func TestStart_Signal(t *testing.T) {
	p, err := New().Start(context.Background(), sh("kill -9 $$"))
	require.NoError(t, err)

	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, -9, code)
}

func TestStart_NotFound(t *testing.T) {
	_, err := New().Start(context.Background(), []string{"no-such-tool-gscript"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeExecutableNotFound, errors.GetCode(err))
	assert.True(t, errors.IsLaunch(err))
	assert.Contains(t, err.Error(), "no-such-tool-gscript")
}

func TestStart_NoArgs(t *testing.T) {
	_, err := New().Start(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestStart_UnknownEncoding(t *testing.T) {
	_, err := New().Start(context.Background(), sh("true"), WithEncoding("no-such-charset"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownEncoding, errors.GetCode(err))
	assert.True(t, errors.IsUsage(err))
}

func TestWithEnv(t *testing.T) {
	env := Env{"PATH": os.Getenv("PATH"), "TEST_VAR": "test_value"}
	p, err := New().Start(context.Background(), sh(`printf %s "$TEST_VAR"`),
		WithEnv(env), WithStdout(Pipe))
	require.NoError(t, err)

	stdout, _, code, err := p.Communicate(nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "test_value", string(stdout))
}

func TestWithEnv_ResolvesFromGivenPath(t *testing.T) {
	_, err := New().Start(context.Background(), sh("true"), WithEnv(Env{"PATH": t.TempDir()}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeExecutableNotFound, errors.GetCode(err))
}

func TestWithDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	p, err := New().Start(context.Background(), sh("pwd -P"), WithDir(dir), WithStdout(Pipe))
	require.NoError(t, err)

	out, err := p.Stdout().Text()
	require.NoError(t, err)
	_, err = p.Wait()
	require.NoError(t, err)
	require.Equal(t, dir+"\n", out)
}

func TestDefaultsOverriddenPerCall(t *testing.T) {
	global, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	local, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	l := New(WithDefaults(WithDir(global), WithStdout(Pipe)))

	p, err := l.Start(context.Background(), sh("pwd -P"))
	require.NoError(t, err)
	stdout, _, _, err := p.Communicate(nil)
	require.NoError(t, err)
	assert.Equal(t, global+"\n", string(stdout))

	p, err = l.Start(context.Background(), sh("pwd -P"), WithDir(local))
	require.NoError(t, err)
	stdout, _, _, err = p.Communicate(nil)
	require.NoError(t, err)
	assert.Equal(t, local+"\n", string(stdout))
}

func TestParentStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := New(WithParentStreams(nil, &stdout, &stderr))

	p, err := l.Start(context.Background(), sh("echo out; echo err >&2"))
	require.NoError(t, err)
	require.Nil(t, p.Stdout())
	require.Nil(t, p.Stderr())

	_, err = p.Wait()
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestDiscardAndWriters(t *testing.T) {
	var parent, captured bytes.Buffer
	l := New(WithParentStreams(nil, &parent, &parent))

	p, err := l.Start(context.Background(), sh("echo out; echo err >&2"),
		WithStdout(Discard), WithStderrWriter(&captured))
	require.NoError(t, err)

	_, err = p.Wait()
	require.NoError(t, err)
	assert.Empty(t, parent.String())
	assert.Equal(t, "err\n", captured.String())
}

func TestStdinReader(t *testing.T) {
	p, err := New().Start(context.Background(), []string{"cat"},
		WithStdinReader(bytes.NewBufferString("from reader")), WithStdout(Pipe))
	require.NoError(t, err)

	stdout, _, _, err := p.Communicate(nil)
	require.NoError(t, err)
	require.Equal(t, "from reader", string(stdout))
}

func TestCommunicateString(t *testing.T) {
	p, err := New().Start(context.Background(), []string{"cat"},
		WithStdin(Pipe), WithStdout(Pipe), WithStreamMode(Text))
	require.NoError(t, err)
	require.False(t, p.Implied())

	stdout, _, code, err := p.CommunicateString("a=1\nb=2\n")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "a=1\nb=2\n", string(stdout))
}

func TestCommunicate_StdinNotPiped(t *testing.T) {
	p, err := New().Start(context.Background(), sh("true"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	_, _, _, err = p.Communicate([]byte("x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestCommunicate_ChildIgnoresInput(t *testing.T) {
	p, err := New().Start(context.Background(), sh("exit 0"), WithStdin(Pipe), WithStreamMode(Bytes))
	require.NoError(t, err)

	_, _, code, err := p.Communicate(bytes.Repeat([]byte("x"), 1<<20))
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestInputStream_Protocol(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		write     func(*InputStream) error
		wantCode  errors.ErrorCode
		wantInput string
	}{
		{
			name:      "text mode accepts text",
			opts:      []Option{WithStreamMode(Text)},
			write:     func(in *InputStream) error { _, err := in.WriteString("text"); return err },
			wantInput: "text",
		},
		{
			name:     "text mode rejects bytes",
			opts:     []Option{WithStreamMode(Text)},
			write:    func(in *InputStream) error { _, err := in.Write([]byte("raw")); return err },
			wantCode: errors.CodeStreamProtocol,
		},
		{
			name:      "bytes mode accepts bytes",
			opts:      []Option{WithStreamMode(Bytes)},
			write:     func(in *InputStream) error { _, err := in.Write([]byte("raw")); return err },
			wantInput: "raw",
		},
		{
			name:     "bytes mode rejects text",
			opts:     []Option{WithStreamMode(Bytes)},
			write:    func(in *InputStream) error { _, err := in.WriteString("text"); return err },
			wantCode: errors.CodeStreamProtocol,
		},
		{
			name:      "implied text decodes bytes",
			write:     func(in *InputStream) error { _, err := in.Write([]byte("raw")); return err },
			wantInput: "raw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithStdin(Pipe), WithStdout(Pipe)}, tt.opts...)
			p, err := New().Start(context.Background(), []string{"cat"}, opts...)
			require.NoError(t, err)

			werr := tt.write(p.Stdin())
			require.NoError(t, p.Stdin().Close())
			stdout, _, _, err := p.Communicate(nil)
			require.NoError(t, err)

			if tt.wantCode != "" {
				require.Error(t, werr)
				assert.Equal(t, tt.wantCode, errors.GetCode(werr))
				assert.True(t, errors.IsUsage(werr))
				assert.Empty(t, stdout)
				return
			}
			require.NoError(t, werr)
			assert.Equal(t, tt.wantInput, string(stdout))
		})
	}
}

func TestOutputStream_Encoding(t *testing.T) {
	p, err := New().Start(context.Background(), sh(`printf '\351t\351'`),
		WithStdout(Pipe), WithEncoding("latin1"))
	require.NoError(t, err)

	out, err := p.Stdout().Text()
	require.NoError(t, err)
	_, err = p.Wait()
	require.NoError(t, err)
	require.Equal(t, "été", out)
}

func TestKill(t *testing.T) {
	p, err := New().Start(context.Background(), sh("exec sleep 30"))
	require.NoError(t, err)

	require.NoError(t, p.Kill())
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, -9, code)
	require.NoError(t, p.Kill())
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	p, err := New().Start(ctx, sh("exec sleep 30"))
	require.NoError(t, err)

	code, _ := p.Wait()
	require.NotEqual(t, 0, code)
}

func TestClose(t *testing.T) {
	p, err := New().Start(context.Background(), []string{"cat"},
		WithStdin(Pipe), WithStdout(Pipe), WithStderr(Pipe))
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestWithExecutable(t *testing.T) {
	p, err := New().Start(context.Background(), []string{"my-shell", "-c", "echo $0"},
		WithExecutable("sh"), WithStdout(Pipe))
	require.NoError(t, err)

	stdout, _, _, err := p.Communicate(nil)
	require.NoError(t, err)
	require.Equal(t, "my-shell\n", string(stdout))
}

func TestExec_NotFound(t *testing.T) {
	err := New().Exec(context.Background(), []string{"no-such-tool-gscript"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeExecutableNotFound, errors.GetCode(err))
	assert.True(t, errors.IsLaunch(err))
}

func TestExec_NoArgs(t *testing.T) {
	err := New().Exec(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestExec_LaunchFailureKeepsWorkingDirectory(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "not-an-image")
	require.NoError(t, os.WriteFile(bin, []byte("plain text, no interpreter line\n"), 0o755))
	dir := t.TempDir()

	before, err := os.Getwd()
	require.NoError(t, err)

	err = New().Exec(context.Background(), []string{bin}, WithDir(dir))
	require.Error(t, err)
	assert.Equal(t, errors.CodeLaunchFailed, errors.GetCode(err))
	assert.True(t, errors.IsLaunch(err))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExec_MissingDir(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	err = New().Exec(context.Background(), sh("true"), WithDir(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
	assert.Equal(t, errors.CodeLaunchFailed, errors.GetCode(err))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
