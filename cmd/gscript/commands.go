package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmgilman/go/gscript/command"
	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/policy"
	"github.com/jmgilman/go/gscript/script"
)

// result is the JSON form of a captured call.
type result struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr,omitempty"`
	Status   bool   `json:"status,omitempty"`
}

// statusMode reports whether the call runs in status mode, in which case
// gscript exits with the tool's code.
func (a *App) statusMode(args *ToolArgs) bool {
	mode := args.Errors
	if mode == "" {
		mode = a.defaultMode
	}
	return strings.EqualFold(mode, string(policy.ModeStatus))
}

// Run runs the tool.
func (c *RunCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}
	code, err := app.session.Run(app.ctx, c.Tool, opts...)
	if err != nil {
		return err
	}
	if app.statusMode(&c.ToolArgs) {
		app.code = code
	}
	return nil
}

// Run prints the tool's output.
func (c *ReadCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}
	out, err := app.session.Capture(app.ctx, c.Tool, opts...)
	if err != nil {
		return err
	}
	if out.Status {
		app.code = out.ExitCode
	}

	if app.json {
		return app.printJSON(result{
			ExitCode: out.ExitCode,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
			Status:   out.Status,
		})
	}
	_, err = io.WriteString(app.io.stdout, out.Stdout)
	return err
}

// Run feeds the input to the tool.
func (c *WriteCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}

	input := c.Input
	if input == "-" {
		data, err := io.ReadAll(app.io.stdin)
		if err != nil {
			return errors.Wrap(err, errors.CodeStreamFailed, "failed to read standard input")
		}
		input = string(data)
	}

	code, err := app.session.Write(app.ctx, c.Tool, input, opts...)
	if err != nil {
		return err
	}
	if app.statusMode(&c.ToolArgs) {
		app.code = code
	}
	return nil
}

// Run starts the tool and waits for it. gscript exits with the tool's code.
func (c *StartCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}
	p, err := app.session.Start(app.ctx, c.Tool, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.io.stderr, "started %s (pid %d)\n", c.Tool, p.Pid())

	code, err := p.Wait()
	if err != nil {
		return err
	}
	app.code = code
	return nil
}

// Run replaces gscript with the tool.
func (c *ExecCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}
	return app.session.Exec(app.ctx, c.Tool, opts...)
}

// Run prints the argument vector.
func (c *BuildCmd) Run(app *App) error {
	opts, err := c.callOptions()
	if err != nil {
		return err
	}
	args := app.session.Build(c.Tool, opts...)
	if app.json {
		return app.printJSON(args)
	}
	_, err = fmt.Fprintln(app.io.stdout, command.Line(args))
	return err
}

// Run checks the program. gscript exits with 1 when it cannot be started.
func (c *FindCmd) Run(app *App) error {
	found := app.session.FindProgram(app.ctx, c.Program, c.Args...)
	if !found {
		app.code = 1
	}
	if app.json {
		return app.printJSON(map[string]any{"program": c.Program, "found": found})
	}
	return nil
}

// Run lists the installed tools.
func (c *CommandsCmd) Run(app *App) error {
	catalog, err := script.Commands(app.env)
	if err != nil {
		return err
	}
	if app.json {
		return app.printJSON(catalog.Commands)
	}
	for _, name := range catalog.Commands {
		if _, err := fmt.Fprintln(app.io.stdout, name); err != nil {
			return err
		}
	}
	return nil
}

// Run prints the version.
func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.io.stdout, "gscript version %s (commit: %s)\n", version, commit)
	return err
}
