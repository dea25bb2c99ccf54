package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	osexec "os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/internal/logging"
)

// Process is a started child. It must be released with Wait, Communicate or
// Close.
type Process struct {
	cmd     *osexec.Cmd
	args    []string
	path    string
	mode    StreamMode
	implied bool
	enc     encoding.Encoding
	logger  *logging.Logger
	started time.Time

	stdin  *InputStream
	stdout *OutputStream
	stderr *OutputStream

	waitOnce sync.Once
	code     int
	waitErr  error
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Args returns the argument vector the process was started with.
func (p *Process) Args() []string {
	return p.args
}

// Path returns the resolved executable path.
func (p *Process) Path() string {
	return p.path
}

// Mode returns the stream mode.
func (p *Process) Mode() StreamMode {
	return p.mode
}

// Implied reports whether text mode was implied rather than requested.
func (p *Process) Implied() bool {
	return p.implied
}

// Stdin returns the write end of a piped stdin, or nil.
func (p *Process) Stdin() *InputStream {
	return p.stdin
}

// Stdout returns the read end of a piped stdout, or nil.
func (p *Process) Stdout() *OutputStream {
	return p.stdout
}

// Stderr returns the read end of a piped stderr, or nil.
func (p *Process) Stderr() *OutputStream {
	return p.stderr
}

// Decode decodes b with the process encoding.
func (p *Process) Decode(b []byte) (string, error) {
	return decode(p.enc, b)
}

// Wait closes a piped stdin, waits for the process to exit and returns its
// exit code. A process killed by a signal reports the negated signal number.
// A non-zero exit is not an error. Piped output must be read before Wait is
// called; Wait may be called more than once.
func (p *Process) Wait() (int, error) {
	p.waitOnce.Do(func() {
		if p.stdin != nil {
			_ = p.stdin.Close()
		}

		err := p.cmd.Wait()
		var exitErr *osexec.ExitError
		if err != nil && !stderrors.As(err, &exitErr) {
			p.waitErr = errors.Wrap(err, errors.CodeStreamFailed, "failed waiting for process")
		}
		if p.cmd.ProcessState != nil {
			p.code = exitCode(p.cmd.ProcessState)
		}

		p.logger.Debug(context.Background(), "process exited",
			"tool", p.args[0],
			"pid", p.cmd.Process.Pid,
			"exit_code", p.code,
			"duration_ms", time.Since(p.started).Milliseconds(),
		)
	})
	return p.code, p.waitErr
}

// Communicate writes input to a piped stdin, closes it, drains piped stdout
// and stderr concurrently and waits for the process. Streams that are not
// piped yield nil output. Writing input to a process whose stdin is not
// piped is a usage error.
func (p *Process) Communicate(input []byte) (stdout, stderr []byte, code int, err error) {
	var feed func(*InputStream) error
	if input != nil {
		feed = func(in *InputStream) error {
			_, err := in.Write(input)
			return err
		}
	}
	return p.communicate(feed)
}

// CommunicateString is Communicate with text input.
func (p *Process) CommunicateString(input string) (stdout, stderr []byte, code int, err error) {
	return p.communicate(func(in *InputStream) error {
		_, err := in.WriteString(input)
		return err
	})
}

func (p *Process) communicate(feed func(*InputStream) error) ([]byte, []byte, int, error) {
	if feed != nil && p.stdin == nil {
		return nil, nil, 0, errors.New(errors.CodeInvalidInput, "process stdin is not piped")
	}

	var (
		g              errgroup.Group
		stdout, stderr *bytes.Buffer
	)
	if p.stdout != nil {
		stdout = &bytes.Buffer{}
		g.Go(func() error { return drain(stdout, p.stdout) })
	}
	if p.stderr != nil {
		stderr = &bytes.Buffer{}
		g.Go(func() error { return drain(stderr, p.stderr) })
	}
	if p.stdin != nil {
		g.Go(func() error {
			var err error
			if feed != nil {
				err = feed(p.stdin)
			}
			if cerr := p.stdin.Close(); err == nil {
				err = cerr
			}
			// The child may exit without reading all of its input.
			if err != nil && isClosedPipe(err) {
				return nil
			}
			return err
		})
	}

	streamErr := g.Wait()
	code, err := p.Wait()
	if streamErr != nil {
		err = streamErr
	}
	return bufferBytes(stdout), bufferBytes(stderr), code, err
}

func drain(buf *bytes.Buffer, s *OutputStream) error {
	if _, err := io.Copy(buf, s.r); err != nil && !isClosedPipe(err) {
		return errors.Wrap(err, errors.CodeStreamFailed, "failed to read process output")
	}
	return nil
}

func bufferBytes(buf *bytes.Buffer) []byte {
	if buf == nil {
		return nil
	}
	return buf.Bytes()
}

// Kill terminates the process immediately.
func (p *Process) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return errors.Wrap(err, errors.CodeInternal, "failed to kill process")
	}
	return nil
}

// Close releases the pipes, then waits for the process.
func (p *Process) Close() error {
	var errs []error
	if p.stdin != nil {
		errs = append(errs, p.stdin.Close())
	}
	if p.stdout != nil {
		errs = append(errs, p.stdout.Close())
	}
	if p.stderr != nil {
		errs = append(errs, p.stderr.Close())
	}
	_, err := p.Wait()
	errs = append(errs, err)
	return stderrors.Join(errs...)
}
