package config

import (
	"io"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
	"github.com/jmgilman/go/gscript/script"
)

// Apply sets the policy settings of cfg on state and returns the session
// options that carry the rest. Configured Env variables are layered on the
// host environment.
func Apply(cfg *Config, state *policy.State) ([]script.Option, error) {
	mode, err := policy.ParseMode(cfg.Policy.DefaultMode)
	if err != nil {
		return nil, err
	}

	var launch []exec.Option
	if cfg.Launch.Encoding != "" {
		if _, err := exec.LookupEncoding(cfg.Launch.Encoding); err != nil {
			return nil, err
		}
		launch = append(launch, exec.WithEncoding(cfg.Launch.Encoding))
	}
	if cfg.Launch.StreamMode != "" {
		streamMode, err := exec.ParseStreamMode(cfg.Launch.StreamMode)
		if err != nil {
			return nil, err
		}
		if streamMode != exec.AutoText {
			launch = append(launch, exec.WithStreamMode(streamMode))
		}
	}
	if cfg.Launch.Dir != "" {
		launch = append(launch, exec.WithDir(cfg.Launch.Dir))
	}
	if len(cfg.Env) > 0 {
		launch = append(launch, exec.WithEnv(exec.Ambient().Merge(cfg.Env)))
	}

	state.SetRaiseOnFatal(cfg.Policy.RaiseOnFatal)
	state.SetCaptureStderr(cfg.Policy.CaptureStderr)

	return []script.Option{
		script.WithState(state),
		script.WithDefaultMode(mode),
		script.WithLaunchDefaults(launch...),
	}, nil
}

// Logger builds a text logger writing to w at the configured level.
func Logger(cfg *Config, w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid log level")
	}
	return logging.NewLogger(logging.LogConfig{Level: level, Writer: w}), nil
}
