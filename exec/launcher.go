package exec

import (
	"context"
	"io"
	"os"
	osexec "os/exec"
	"time"

	"github.com/jmgilman/go/gscript/internal/logging"
)

// Launcher starts tool processes. It implements Starter.
type Launcher struct {
	resolver *Resolver
	adapter  Adapter
	logger   *logging.Logger
	defaults []Option

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithResolver sets the executable resolver.
func WithResolver(r *Resolver) LauncherOption {
	return func(l *Launcher) {
		l.resolver = r
	}
}

// WithAdapter overrides the platform launch adapter.
func WithAdapter(a Adapter) LauncherOption {
	return func(l *Launcher) {
		l.adapter = a
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) LauncherOption {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// WithDefaults sets launch options applied before the per-call options of
// every Start and Exec.
func WithDefaults(opts ...Option) LauncherOption {
	return func(l *Launcher) {
		l.defaults = append(l.defaults, opts...)
	}
}

// WithParentStreams sets the streams children inherit. Defaults to the
// host's os.Stdin, os.Stdout and os.Stderr.
func WithParentStreams(stdin io.Reader, stdout, stderr io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithExitFunc sets the function used to terminate the host where the
// platform cannot replace the process image. Defaults to os.Exit.
func WithExitFunc(exit func(int)) LauncherOption {
	return func(l *Launcher) {
		l.exit = exit
	}
}

// New creates a Launcher.
func New(opts ...LauncherOption) *Launcher {
	l := &Launcher{
		adapter: DefaultAdapter(),
		logger:  logging.NewNopLogger(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		l.resolver = NewResolver()
	}
	return l
}

// Start implements Starter.
func (l *Launcher) Start(ctx context.Context, args []string, opts ...Option) (*Process, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, noArgs()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := newConfig(l.defaults, opts)
	path, err := l.resolve(args[0], cfg)
	if err != nil {
		return nil, err
	}
	enc, err := LookupEncoding(cfg.encoding)
	if err != nil {
		return nil, err
	}

	cmd := osexec.CommandContext(ctx, path, args[1:]...)
	if cfg.executable != "" {
		cmd.Args[0] = args[0]
	}
	cmd.Env = cfg.env.Environ()
	cmd.Dir = cfg.dir

	p := &Process{
		cmd:     cmd,
		args:    append([]string(nil), args...),
		path:    path,
		mode:    cfg.mode,
		implied: !cfg.modeSet,
		enc:     enc,
		logger:  l.logger,
	}
	if err := l.connect(cmd, cfg, p); err != nil {
		return nil, launchFailed(err, args[0], path)
	}
	if err := l.adapter.Prepare(cmd); err != nil {
		return nil, launchFailed(err, args[0], path)
	}
	if err := cmd.Start(); err != nil {
		return nil, launchFailed(err, args[0], path)
	}
	p.started = time.Now()

	l.logger.Debug(ctx, "process started",
		"tool", args[0],
		"path", path,
		"pid", cmd.Process.Pid,
		"adapter", l.adapter.Name(),
		"stream_mode", p.mode.String(),
	)
	return p, nil
}

func (l *Launcher) resolve(name string, cfg *config) (string, error) {
	if cfg.executable != "" {
		name = cfg.executable
	}
	return l.resolver.Resolve(name, cfg.env)
}

func (l *Launcher) connect(cmd *osexec.Cmd, cfg *config, p *Process) error {
	switch {
	case cfg.stdin.reader != nil:
		cmd.Stdin = cfg.stdin.reader
	case cfg.stdin.kind == Pipe:
		w, err := cmd.StdinPipe()
		if err != nil {
			return err
		}
		p.stdin = &InputStream{w: w, mode: p.mode, enc: p.enc, logger: l.logger}
	case cfg.stdin.kind == Inherit:
		cmd.Stdin = l.stdin
	}

	stdout, err := l.output(cmd.StdoutPipe, cfg.stdout, l.stdout, p)
	if err != nil {
		return err
	}
	p.stdout = stdout.stream
	if stdout.stream == nil {
		cmd.Stdout = stdout.writer
	}

	stderr, err := l.output(cmd.StderrPipe, cfg.stderr, l.stderr, p)
	if err != nil {
		return err
	}
	p.stderr = stderr.stream
	if stderr.stream == nil {
		cmd.Stderr = stderr.writer
	}

	return nil
}

type connected struct {
	stream *OutputStream
	writer io.Writer
}

func (l *Launcher) output(pipe func() (io.ReadCloser, error), spec outputSpec, parent io.Writer, p *Process) (connected, error) {
	switch {
	case spec.writer != nil:
		return connected{writer: spec.writer}, nil
	case spec.kind == Pipe:
		r, err := pipe()
		if err != nil {
			return connected{}, err
		}
		return connected{stream: &OutputStream{r: r, enc: p.enc}}, nil
	case spec.kind == Inherit:
		return connected{writer: parent}, nil
	default:
		return connected{}, nil
	}
}
