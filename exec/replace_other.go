//go:build !unix

package exec

import (
	"context"

	"github.com/jmgilman/go/gscript/errors"
)

// Exec implements Starter. The platform cannot replace the process image, so
// the tool runs to completion with inherited streams and the host exits with
// its status.
func (l *Launcher) Exec(ctx context.Context, args []string, opts ...Option) error {
	opts = append(opts, WithStdin(Inherit), WithStdout(Inherit), WithStderr(Inherit))
	p, err := l.Start(ctx, args, opts...)
	if err != nil {
		return err
	}

	code, err := p.Wait()
	if err != nil {
		return err
	}

	l.exit(code)
	return errors.WithContext(
		errors.Newf(errors.CodeTerminated, "%s exited with status %d but the host kept running", args[0], code),
		"exit_code", code,
	)
}
