package script

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/policy"
)

const messageTool = "g.message"

// Message shows msg through g.message with the given flag characters. The
// tool's exit code is ignored. When g.message cannot be started, msg is
// written to stderr together with the launch error, which is also
// returned.
func (s *Session) Message(ctx context.Context, msg, flag string) error {
	err := s.message(ctx, msg, flag)
	if err != nil {
		fmt.Fprintf(s.stderr, "%s (Additionally, there was an error: %v)\n", msg, err)
	}
	return err
}

func (s *Session) message(ctx context.Context, msg, flag string) error {
	_, err := s.Run(ctx, messageTool,
		Flags(flag),
		Opt("message", msg),
		Errors(policy.ModeIgnore),
	)
	return err
}

// Debug shows msg as a debug message when the debug level is at least
// level.
func (s *Session) Debug(ctx context.Context, msg string, level int) error {
	if s.DebugLevel(ctx) < level {
		return nil
	}
	_, err := s.Run(ctx, messageTool,
		Flags("d"),
		Opt("message", msg),
		Opt("debug", level),
	)
	return err
}

// Verbose shows a message that is only printed in verbose mode.
func (s *Session) Verbose(ctx context.Context, msg string) error {
	return s.Message(ctx, msg, "v")
}

// Info shows an informational message.
func (s *Session) Info(ctx context.Context, msg string) error {
	return s.Message(ctx, msg, "i")
}

// Percent reports progress: item i of n, in increments of step.
func (s *Session) Percent(ctx context.Context, i, n, step int) error {
	return s.Message(ctx, fmt.Sprintf("%d %d %d\n", i, n, step), "p")
}

// Warning shows a warning message.
func (s *Session) Warning(ctx context.Context, msg string) error {
	return s.Message(ctx, msg, "w")
}

// Error shows an error message. It does not stop the program; see Fatal.
func (s *Session) Error(ctx context.Context, msg string) error {
	return s.Message(ctx, msg, "e")
}

// Fatal shows msg as an error and exits with status 1, or returns a
// *policy.FatalError when raise-on-fatal is set.
func (s *Session) Fatal(ctx context.Context, msg string) error {
	return s.resolver.Fatal(ctx, msg)
}

// ReportError implements policy.Reporter. Unlike Error it writes no
// fallback text, leaving that to the resolver.
func (s *Session) ReportError(ctx context.Context, msg string) error {
	return s.message(ctx, msg, "e")
}

// parseLevel parses the output of g.gisenv get=DEBUG.
func parseLevel(out string) (int, error) {
	if out == "" {
		return 0, nil
	}
	level, err := strconv.Atoi(out)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeInvalidInput, "debug level %q", out)
	}
	return level, nil
}
