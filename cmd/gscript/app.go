package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/gscript/config"
	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
	"github.com/jmgilman/go/gscript/script"
)

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// App is bound to every command's Run method.
type App struct {
	ctx     context.Context
	session *script.Session
	logger  *logging.Logger
	env     exec.Env
	io      streams
	json    bool

	// defaultMode is the configured mode used when a call selects none.
	defaultMode string

	// code is the exit status gscript ends with when the command succeeds.
	code int
}

// exitStatus maps a command error to the status gscript exits with.
func exitStatus(err error) int {
	var inv *policy.InvocationError
	if errors.As(err, &inv) && inv.ExitCode > 0 {
		return inv.ExitCode
	}
	if errors.GetCode(err) == errors.CodeExecutableNotFound {
		return 127
	}
	return 1
}

func run(ctx context.Context, args []string, std streams) int {
	var cli CLI
	exited := -1
	parser, err := kong.New(&cli,
		kong.Name("gscript"),
		kong.Description("Run GRASS tools with argument building and exit-code policies."),
		kong.UsageOnError(),
		kong.Writers(std.stdout, std.stderr),
		kong.Exit(func(code int) { exited = code }),
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintf(std.stderr, "gscript: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if exited >= 0 {
		return exited
	}
	if err != nil {
		fmt.Fprintf(std.stderr, "gscript: %v\n", err)
		return 2
	}

	app, err := newApp(ctx, &cli, std)
	if err != nil {
		return report(std, cli.JSON, err)
	}

	if err := kctx.Run(app); err != nil {
		return report(std, cli.JSON, err)
	}
	return app.code
}

func newApp(ctx context.Context, cli *CLI, std streams) (*App, error) {
	cfg, err := config.Load(ctx, cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.EnvFile != "" {
		vars, err := config.LoadEnvFile(osfs.Default, cli.EnvFile)
		if err != nil {
			return nil, err
		}
		if cfg.Env == nil {
			cfg.Env = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			cfg.Env[k] = v
		}
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	logger, err := config.Logger(cfg, std.stderr)
	if err != nil {
		return nil, err
	}

	state := policy.NewState(policy.WithStderr(std.stderr), policy.WithLogger(logger))
	opts, err := config.Apply(cfg, state)
	if err != nil {
		return nil, err
	}

	starter := exec.New(
		exec.WithLogger(logger),
		exec.WithParentStreams(std.stdin, std.stdout, std.stderr),
	)
	opts = append(opts,
		script.WithStarter(starter),
		script.WithLogger(logger),
		script.WithOutput(std.stdout, std.stderr),
	)

	env := exec.Env(nil)
	if len(cfg.Env) > 0 {
		env = exec.Ambient().Merge(cfg.Env)
	}

	return &App{
		ctx:     ctx,
		session: script.NewSession(opts...),
		logger:  logger,
		env:     env,
		io:      std,
		json:    cli.JSON,

		defaultMode: cfg.Policy.DefaultMode,
	}, nil
}

// report prints err and returns the exit status for it.
func report(std streams, asJSON bool, err error) int {
	if asJSON {
		enc := json.NewEncoder(std.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errors.ToJSON(err))
	} else {
		var inv *policy.InvocationError
		if errors.As(err, &inv) {
			fmt.Fprintln(std.stderr, inv.Error())
		} else {
			fmt.Fprintf(std.stderr, "gscript: %v\n", err)
		}
	}
	return exitStatus(err)
}

// printJSON writes v to stdout as indented JSON.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.io.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode output")
	}
	return nil
}
