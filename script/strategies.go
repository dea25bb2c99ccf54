package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmgilman/go/gscript/command"
	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
)

// Outcome is the result of a blocking call whose output was captured.
type Outcome struct {
	// ExitCode is the tool's exit code.
	ExitCode int

	// Stdout is the captured standard output, decoded in text modes.
	Stdout string

	// Stderr is the captured error output. It is empty unless stderr
	// capture is on for the session's state.
	Stderr string

	// Status is set when the call ran in status mode.
	Status bool
}

// Start starts tool with inherited streams and returns the live process.
// Its exit code is not inspected.
func (s *Session) Start(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return s.startWith(ctx, "start", tool, opts)
}

// Pipe starts tool with a piped stdout.
func (s *Session) Pipe(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return s.startWith(ctx, "pipe", tool, opts, exec.WithStdout(exec.Pipe))
}

// Feed starts tool with a piped stdin.
func (s *Session) Feed(ctx context.Context, tool string, opts ...CallOption) (*exec.Process, error) {
	return s.startWith(ctx, "feed", tool, opts, exec.WithStdin(exec.Pipe))
}

// Run runs tool to completion with inherited streams and resolves its exit
// code. It returns the exit code, or -1 when the tool could not be started.
func (s *Session) Run(ctx context.Context, tool string, opts ...CallOption) (int, error) {
	out, err := s.complete(ctx, "run", tool, opts, false, nil)
	if out == nil {
		return -1, err
	}
	return out.ExitCode, err
}

// Read runs tool to completion and returns its standard output. Use
// Capture to also obtain the exit code, for example in status mode.
func (s *Session) Read(ctx context.Context, tool string, opts ...CallOption) (string, error) {
	out, err := s.complete(ctx, "read", tool, opts, true, nil)
	if out == nil {
		return "", err
	}
	return out.Stdout, err
}

// Capture runs tool to completion and returns its captured outcome.
func (s *Session) Capture(ctx context.Context, tool string, opts ...CallOption) (*Outcome, error) {
	return s.complete(ctx, "read", tool, opts, true, nil)
}

// Write runs tool to completion with stdin fed from the given text. In
// Bytes mode the text is written unencoded.
func (s *Session) Write(ctx context.Context, tool, stdin string, opts ...CallOption) (int, error) {
	out, err := s.complete(ctx, "write", tool, opts, false, &stdin)
	if out == nil {
		return -1, err
	}
	return out.ExitCode, err
}

// Exec replaces the current process with tool. It returns only on failure.
func (s *Session) Exec(ctx context.Context, tool string, opts ...CallOption) error {
	req, err := s.prepare(ctx, opts)
	if err != nil {
		return err
	}

	ctx, span, logger := s.startInvocationSpan(ctx, "exec", tool, req.mode)
	args := s.builder.Build(tool, req.flags, req.opts)
	logger.Debug(ctx, "replacing process", "command", command.Line(args))

	// The span is ended before the image is replaced so it can be exported.
	s.endInvocationSpan(span, command.Line(args), nil)

	launch := append(append([]exec.Option{}, s.defaults...), req.launch...)
	return s.starter.Exec(ctx, args, launch...)
}

// Call runs a raw argument vector with inherited streams and returns its
// exit code without resolving it.
func (s *Session) Call(ctx context.Context, args []string, opts ...exec.Option) (int, error) {
	launch := append(append([]exec.Option{}, s.defaults...), opts...)
	p, err := s.starter.Start(ctx, args, launch...)
	if err != nil {
		return -1, err
	}
	return p.Wait()
}

func (s *Session) prepare(ctx context.Context, opts []CallOption) (*request, error) {
	req := newRequest(s.defaultMode, opts)
	if err := req.resolveReserved(ctx, s.logger); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Session) startWith(ctx context.Context, strategy, tool string, opts []CallOption, forced ...exec.Option) (*exec.Process, error) {
	req, err := s.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	ctx, span, logger := s.startInvocationSpan(ctx, strategy, tool, req.mode)
	p, args, err := s.launch(ctx, tool, req, false, forced...)
	s.endInvocationSpan(span, command.Line(args), err)
	if err != nil {
		logger.Warn(ctx, "failed to start tool", "error", err.Error())
		return nil, err
	}

	logger.Debug(ctx, "tool started", "pid", p.Pid(), "strategy", strategy)
	return p, nil
}

func (s *Session) complete(ctx context.Context, strategy, tool string, opts []CallOption, captureStdout bool, stdin *string) (*Outcome, error) {
	req, err := s.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := policy.ParseMode(string(req.mode)); err != nil {
		return nil, err
	}

	ctx, span, logger := s.startInvocationSpan(ctx, strategy, tool, req.mode)
	started := time.Now()

	var forced []exec.Option
	if captureStdout {
		forced = append(forced, exec.WithStdout(exec.Pipe))
	}
	if stdin != nil {
		forced = append(forced, exec.WithStdin(exec.Pipe))
	}
	capture := s.state.CaptureStderr() && !req.stderrSet

	p, args, err := s.launch(ctx, tool, req, capture, forced...)
	line := command.Line(args)
	if err != nil {
		s.endInvocationSpan(span, line, err)
		return nil, err
	}

	out, err := collect(p, stdin)
	if err != nil {
		s.endInvocationSpan(span, line, err)
		return nil, err
	}
	setExitCode(span, out.ExitCode)

	// Exit mode writes the captured text itself.
	if out.ExitCode != 0 && capture && out.Stderr != "" && !strings.EqualFold(string(req.mode), string(policy.ModeExit)) {
		_, _ = io.WriteString(s.stderr, out.Stderr)
	}

	res, err := s.resolver.Resolve(ctx, out.ExitCode, policy.Invocation{Tool: tool, Args: args}, req.mode, out.Stderr)
	out.Status = res.Status
	logging.LogInvocation(ctx, logger, line, out.ExitCode, time.Since(started), err)
	s.endInvocationSpan(span, line, err)
	return out, err
}

// launch builds the argument vector and starts it. Launcher options apply
// in order: session defaults, stderr capture, the call's own, then the
// streams the strategy requires.
func (s *Session) launch(ctx context.Context, tool string, req *request, captureStderr bool, forced ...exec.Option) (*exec.Process, []string, error) {
	args := s.builder.Build(tool, req.flags, req.opts)
	if level := s.DebugLevel(ctx); level > 0 {
		fmt.Fprintf(s.stderr, "D1/%d: start: %s\n", level, command.Line(args))
	}

	opts := make([]exec.Option, 0, len(s.defaults)+len(req.launch)+len(forced)+1)
	opts = append(opts, s.defaults...)
	if captureStderr {
		opts = append(opts, exec.WithStderr(exec.Pipe))
	}
	opts = append(opts, req.launch...)
	opts = append(opts, forced...)

	p, err := s.starter.Start(ctx, args, opts...)
	return p, args, err
}

func collect(p *exec.Process, stdin *string) (*Outcome, error) {
	var (
		stdout, stderr []byte
		code           int
		err            error
	)
	switch {
	case stdin == nil:
		stdout, stderr, code, err = p.Communicate(nil)
	case p.Mode() == exec.Bytes:
		stdout, stderr, code, err = p.Communicate([]byte(*stdin))
	default:
		stdout, stderr, code, err = p.CommunicateString(*stdin)
	}
	if err != nil {
		return nil, err
	}

	out := &Outcome{ExitCode: code}
	if out.Stdout, err = text(p, stdout); err != nil {
		return nil, err
	}
	if out.Stderr, err = text(p, stderr); err != nil {
		return nil, err
	}
	return out, nil
}

func text(p *exec.Process, b []byte) (string, error) {
	if p.Mode() == exec.Bytes {
		return string(b), nil
	}
	return p.Decode(b)
}
