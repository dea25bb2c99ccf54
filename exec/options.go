package exec

import (
	"io"
)

// config holds the launch settings for a single Start or Exec call. Launcher
// defaults are applied first and per-call options override them.
type config struct {
	env        Env
	dir        string
	mode       StreamMode
	modeSet    bool
	encoding   string
	executable string

	stdin  inputSpec
	stdout outputSpec
	stderr outputSpec
}

type inputSpec struct {
	kind   Stream
	reader io.Reader
}

type outputSpec struct {
	kind   Stream
	writer io.Writer
}

func newConfig(defaults, opts []Option) *config {
	c := &config{}
	for _, opt := range defaults {
		opt(c)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a single launch.
type Option func(*config)

// WithEnv sets the child environment. A nil Env inherits the host's.
func WithEnv(env Env) Option {
	return func(c *config) {
		c.env = env
	}
}

// WithDir sets the working directory of the child.
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithStreamMode requests an explicit stream mode. Without it the mode is
// AutoText and Process.Implied reports true.
func WithStreamMode(mode StreamMode) Option {
	return func(c *config) {
		c.mode = mode
		c.modeSet = true
	}
}

// WithEncoding sets the text encoding of piped streams. See LookupEncoding.
func WithEncoding(name string) Option {
	return func(c *config) {
		c.encoding = name
	}
}

// WithExecutable runs path instead of resolving args[0]. args[0] is still
// passed to the child as its program name.
func WithExecutable(path string) Option {
	return func(c *config) {
		c.executable = path
	}
}

// WithStdin connects the child's stdin.
func WithStdin(s Stream) Option {
	return func(c *config) {
		c.stdin = inputSpec{kind: s}
	}
}

// WithStdinReader feeds the child's stdin from r.
func WithStdinReader(r io.Reader) Option {
	return func(c *config) {
		c.stdin = inputSpec{reader: r}
	}
}

// WithStdout connects the child's stdout.
func WithStdout(s Stream) Option {
	return func(c *config) {
		c.stdout = outputSpec{kind: s}
	}
}

// WithStdoutWriter copies the child's stdout to w.
func WithStdoutWriter(w io.Writer) Option {
	return func(c *config) {
		c.stdout = outputSpec{writer: w}
	}
}

// WithStderr connects the child's stderr.
func WithStderr(s Stream) Option {
	return func(c *config) {
		c.stderr = outputSpec{kind: s}
	}
}

// WithStderrWriter copies the child's stderr to w.
func WithStderrWriter(w io.Writer) Option {
	return func(c *config) {
		c.stderr = outputSpec{writer: w}
	}
}
