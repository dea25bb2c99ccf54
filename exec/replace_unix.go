//go:build unix

package exec

import (
	"context"
	"os"

	"golang.org/x/sys/unix"

	"github.com/jmgilman/go/gscript/errors"
)

// Exec implements Starter. The process image is replaced with the tool; the
// stream and encoding options do not apply.
func (l *Launcher) Exec(ctx context.Context, args []string, opts ...Option) error {
	if len(args) == 0 || args[0] == "" {
		return noArgs()
	}

	cfg := newConfig(l.defaults, opts)
	path, err := l.resolve(args[0], cfg)
	if err != nil {
		return err
	}

	env := cfg.env.Environ()
	if env == nil {
		env = os.Environ()
	}
	// The working directory is only changed for the new image; a failed
	// exec leaves the host where it was.
	if cfg.dir != "" {
		wd, err := os.Getwd()
		if err != nil {
			return launchFailed(err, args[0], path)
		}
		if err := os.Chdir(cfg.dir); err != nil {
			return launchFailed(err, args[0], path)
		}
		defer func() {
			if err := os.Chdir(wd); err != nil {
				l.logger.Warn(ctx, "failed to restore working directory", "dir", wd, "error", err.Error())
			}
		}()
	}

	l.logger.Debug(ctx, "replacing process", "tool", args[0], "path", path)
	if err := unix.Exec(path, args, env); err != nil {
		return launchFailed(err, args[0], path)
	}

	return errors.New(errors.CodeInternal, "exec returned without error")
}
