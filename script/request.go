package script

import (
	"context"
	"fmt"
	"io"

	"github.com/jmgilman/go/gscript/command"
	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
)

// request is a single tool call assembled from CallOptions.
type request struct {
	flags     command.Flags
	opts      command.Options
	mode      policy.Mode
	launch    []exec.Option
	stderrSet bool
}

// CallOption configures a single tool call.
type CallOption func(*request)

// Flags sets the single-character flags, e.g. "pg".
func Flags(chars string) CallOption {
	return func(r *request) {
		r.flags.Chars = chars
	}
}

// Overwrite adds --o.
func Overwrite() CallOption {
	return func(r *request) {
		r.flags.Overwrite = true
	}
}

// Quiet adds --q.
func Quiet() CallOption {
	return func(r *request) {
		r.flags.Quiet = true
	}
}

// Verbose adds --v.
func Verbose() CallOption {
	return func(r *request) {
		r.flags.Verbose = true
	}
}

// SuperQuiet adds --qq.
func SuperQuiet() CallOption {
	return func(r *request) {
		r.flags.SuperQuiet = true
	}
}

// Opt adds a named option. Reserved launcher names (see command.Reserved)
// configure the launch instead of becoming tool arguments.
func Opt(name string, value any) CallOption {
	return func(r *request) {
		r.opts = append(r.opts, command.Opt(name, value))
	}
}

// Options adds named options in order.
func Options(opts command.Options) CallOption {
	return func(r *request) {
		r.opts = append(r.opts, opts...)
	}
}

// Errors selects the error-handling mode.
func Errors(mode policy.Mode) CallOption {
	return func(r *request) {
		r.mode = mode
	}
}

// Env sets the environment of the tool. A nil Env inherits the host's.
func Env(env exec.Env) CallOption {
	return Launch(exec.WithEnv(env))
}

// Dir sets the working directory of the tool.
func Dir(dir string) CallOption {
	return Launch(exec.WithDir(dir))
}

// Encoding sets the text encoding of piped streams.
func Encoding(name string) CallOption {
	return Launch(exec.WithEncoding(name))
}

// StreamMode requests an explicit stream mode.
func StreamMode(mode exec.StreamMode) CallOption {
	return Launch(exec.WithStreamMode(mode))
}

// Stderr redirects the tool's stderr to w. Such calls never capture stderr.
func Stderr(w io.Writer) CallOption {
	return func(r *request) {
		r.launch = append(r.launch, exec.WithStderrWriter(w))
		r.stderrSet = true
	}
}

// Launch adds raw launcher options.
func Launch(opts ...exec.Option) CallOption {
	return func(r *request) {
		r.launch = append(r.launch, opts...)
	}
}

func newRequest(defaultMode policy.Mode, opts []CallOption) *request {
	r := &request{mode: defaultMode}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolveReserved turns reserved named options into launcher options.
// Names without an equivalent here are dropped with a debug record.
func (r *request) resolveReserved(ctx context.Context, logger *logging.Logger) error {
	_, launch := command.Split(r.opts)
	for _, o := range launch {
		if o.Value == nil {
			continue
		}
		if err := r.applyReserved(o); err != nil {
			return err
		}
		if _, ok := ignoredReserved[o.Name]; ok {
			logger.Debug(ctx, "launcher option has no effect", "option", o.Name)
		}
	}
	return nil
}

var ignoredReserved = map[string]struct{}{
	"bufsize":       {},
	"preexec_fn":    {},
	"close_fds":     {},
	"startupinfo":   {},
	"creationflags": {},
}

func (r *request) applyReserved(o command.Option) error {
	switch o.Name {
	case "errors":
		switch v := o.Value.(type) {
		case policy.Mode:
			r.mode = v
		case string:
			r.mode = policy.Mode(v)
		default:
			return badReserved(o)
		}
	case "env":
		switch v := o.Value.(type) {
		case exec.Env:
			r.launch = append(r.launch, exec.WithEnv(v))
		case map[string]string:
			r.launch = append(r.launch, exec.WithEnv(exec.Env(v)))
		default:
			return badReserved(o)
		}
	case "cwd":
		v, ok := o.Value.(string)
		if !ok {
			return badReserved(o)
		}
		r.launch = append(r.launch, exec.WithDir(v))
	case "encoding":
		v, ok := o.Value.(string)
		if !ok {
			return badReserved(o)
		}
		r.launch = append(r.launch, exec.WithEncoding(v))
	case "text", "universal_newlines":
		v, ok := o.Value.(bool)
		if !ok {
			return badReserved(o)
		}
		mode := exec.Bytes
		if v {
			mode = exec.Text
		}
		r.launch = append(r.launch, exec.WithStreamMode(mode))
	case "executable":
		v, ok := o.Value.(string)
		if !ok {
			return badReserved(o)
		}
		r.launch = append(r.launch, exec.WithExecutable(v))
	case "stdin":
		switch v := o.Value.(type) {
		case exec.Stream:
			r.launch = append(r.launch, exec.WithStdin(v))
		case io.Reader:
			r.launch = append(r.launch, exec.WithStdinReader(v))
		default:
			return badReserved(o)
		}
	case "stdout", "stderr":
		var opt exec.Option
		switch v := o.Value.(type) {
		case exec.Stream:
			opt = exec.WithStdout(v)
			if o.Name == "stderr" {
				opt = exec.WithStderr(v)
			}
		case io.Writer:
			opt = exec.WithStdoutWriter(v)
			if o.Name == "stderr" {
				opt = exec.WithStderrWriter(v)
			}
		default:
			return badReserved(o)
		}
		r.launch = append(r.launch, opt)
		if o.Name == "stderr" {
			r.stderrSet = true
		}
	}
	return nil
}

func badReserved(o command.Option) error {
	return errors.WithContext(
		errors.New(errors.CodeInvalidInput, fmt.Sprintf("unsupported value of type %T for option %s", o.Value, o.Name)),
		"option", o.Name,
	)
}
