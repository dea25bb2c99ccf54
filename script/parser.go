package script

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"al.essio.dev/pkg/shellescape"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
)

// argsParsed marks g.parser output that carries parsed values rather than
// help or error text.
const argsParsed = "@ARGS_PARSED@"

// Parsed holds the values g.parser extracted from a script's command line.
type Parsed struct {
	// Options maps option names to their values.
	Options map[string]string

	// Flags maps flag names to whether they were given.
	Flags map[string]bool

	// Vars holds GRASS_OVERWRITE and GRASS_VERBOSE when g.parser set them.
	Vars map[string]string
}

// ParseOptions decodes the NUL-separated output of g.parser -n. Reading
// stops at the first empty field.
func ParseOptions(data []byte) (*Parsed, error) {
	fields := bytes.Split(data, []byte{0})
	if string(fields[0]) != argsParsed {
		return nil, errors.New(errors.CodeStreamProtocol, "g.parser did not report parsed arguments")
	}

	parsed := &Parsed{
		Options: make(map[string]string),
		Flags:   make(map[string]bool),
		Vars:    make(map[string]string),
	}
	for _, field := range fields[1:] {
		if len(field) == 0 {
			break
		}
		if !utf8.Valid(field) {
			return nil, parserOutputError("invalid output from g.parser (not UTF-8)", field)
		}

		name, value, ok := strings.Cut(string(field), "=")
		if !ok {
			return nil, parserOutputError("invalid output from g.parser", field)
		}

		switch {
		case strings.HasPrefix(name, "flag_"):
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, parserOutputError("invalid flag value from g.parser", field)
			}
			parsed.Flags[name[len("flag_"):]] = n != 0
		case strings.HasPrefix(name, "opt_"):
			parsed.Options[name[len("opt_"):]] = value
		case name == "GRASS_OVERWRITE" || name == "GRASS_VERBOSE":
			parsed.Vars[name] = value
		default:
			return nil, parserOutputError("unexpected output variable from g.parser", field)
		}
	}
	return parsed, nil
}

func parserOutputError(msg string, field []byte) error {
	return errors.WithContext(errors.New(errors.CodeStreamProtocol, fmt.Sprintf("%s: %q", msg, field)), "field", string(field))
}

// Parser hands a script's command line to g.parser and returns the parsed
// values. argv is the script's full argument vector, os.Args for most
// callers.
//
// Outside a GRASS session, or when g.parser prints help or an error
// instead of values, its output is relayed and the host exits with the
// parser's status. GRASS_OVERWRITE and GRASS_VERBOSE reported by g.parser
// are exported to the host environment.
func (s *Session) Parser(ctx context.Context, argv []string) (*Parsed, error) {
	if len(argv) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "empty argument vector")
	}
	if os.Getenv("GISBASE") == "" {
		fmt.Fprintln(s.stderr, "You must be in GRASS GIS to run this program.")
		return nil, s.terminate(1)
	}

	if err := os.Setenv("CMDLINE", cmdline(argv)); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to set CMDLINE")
	}

	args := append([]string{"g.parser", "-n"}, argv...)
	args[2] = scriptPath(argv[0])

	ctx, span, logger := s.startInvocationSpan(ctx, "parser", "g.parser", "")
	launch := append(append([]exec.Option{}, s.defaults...),
		exec.WithStdout(exec.Pipe),
		exec.WithStreamMode(exec.Bytes),
	)
	p, err := s.starter.Start(ctx, args, launch...)
	if err != nil {
		s.endInvocationSpan(span, strings.Join(args, " "), err)
		return nil, err
	}

	out, _, code, err := p.Communicate(nil)
	if err == nil {
		setExitCode(span, code)
	}
	s.endInvocationSpan(span, strings.Join(args, " "), err)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(out, []byte(argsParsed+"\x00")) && string(out) != argsParsed {
		logger.Debug(ctx, "g.parser did not parse arguments", "exit_code", code)
		_, _ = s.stdout.Write(out)
		return nil, s.terminate(code)
	}

	parsed, err := ParseOptions(out)
	if err != nil {
		return nil, err
	}
	for name, value := range parsed.Vars {
		if err := os.Setenv(name, value); err != nil {
			return nil, errors.Wrapf(err, errors.CodeInternal, "failed to set %s", name)
		}
	}
	return parsed, nil
}

func (s *Session) terminate(code int) error {
	s.state.Exit(code)
	return errors.WithContext(
		errors.New(errors.CodeTerminated, fmt.Sprintf("terminated with exit code %d", code)),
		"exit_code", code,
	)
}

// cmdline renders argv as the script's base name followed by shell-quoted
// arguments.
func cmdline(argv []string) string {
	parts := make([]string, 0, len(argv))
	parts = append(parts, filepath.Base(argv[0]))
	for _, arg := range argv[1:] {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// scriptPath makes the script name absolute. Bare names are taken relative
// to the directory of the running executable.
func scriptPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if strings.ContainsAny(name, `/\`) {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
		return name
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), name)
	}
	return name
}
