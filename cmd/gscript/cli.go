package main

import (
	"strings"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/policy"
	"github.com/jmgilman/go/gscript/script"
)

// CLI defines the command-line interface.
type CLI struct {
	Config   string `help:"Settings file (.toml, .yaml, .yml or .cue)." type:"path" env:"GSCRIPT_CONFIG"`
	EnvFile  string `help:"Dotenv file with variables for the tools." type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)." placeholder:"LEVEL"`
	JSON     bool   `help:"Print results and errors as JSON."`

	Run      RunCmd      `cmd:"" help:"Run a tool and resolve its exit code."`
	Read     ReadCmd     `cmd:"" help:"Run a tool and print its standard output."`
	Write    WriteCmd    `cmd:"" help:"Run a tool with text fed to its standard input."`
	Start    StartCmd    `cmd:"" help:"Start a tool, print its pid and wait for it."`
	Exec     ExecCmd     `cmd:"" help:"Replace gscript with the tool."`
	Build    BuildCmd    `cmd:"" help:"Print the argument vector of a call."`
	Find     FindCmd     `cmd:"" help:"Report whether a program can be started."`
	Commands CommandsCmd `cmd:"" help:"List the tools of the GRASS installation in GISBASE."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// ToolArgs are the arguments shared by commands that call a tool.
type ToolArgs struct {
	Errors     string   `help:"Error handling mode (raise, fatal, status, exit, ignore)." placeholder:"MODE"`
	Flags      string   `help:"Single-character tool flags, e.g. pg." placeholder:"CHARS"`
	Overwrite  bool     `short:"o" help:"Let outputs overwrite existing data (--o)."`
	Quiet      bool     `short:"q" help:"Ask the tool to be quiet (--q)."`
	Verbose    bool     `short:"v" help:"Ask the tool to be verbose (--v)."`
	SuperQuiet bool     `name:"qq" help:"Ask the tool to be silent (--qq)."`
	Tool       string   `arg:"" help:"Tool name."`
	Options    []string `arg:"" optional:"" help:"Tool options as name=value." placeholder:"NAME=VALUE"`
}

// callOptions translates the arguments into script call options.
func (a *ToolArgs) callOptions() ([]script.CallOption, error) {
	var opts []script.CallOption
	if a.Flags != "" {
		opts = append(opts, script.Flags(a.Flags))
	}
	if a.Overwrite {
		opts = append(opts, script.Overwrite())
	}
	if a.Quiet {
		opts = append(opts, script.Quiet())
	}
	if a.Verbose {
		opts = append(opts, script.Verbose())
	}
	if a.SuperQuiet {
		opts = append(opts, script.SuperQuiet())
	}
	if a.Errors != "" {
		opts = append(opts, script.Errors(policy.Mode(a.Errors)))
	}

	for _, arg := range a.Options {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.WithContext(
				errors.Newf(errors.CodeInvalidInput, "option %q is not in name=value form", arg),
				"option", arg,
			)
		}
		opts = append(opts, script.Opt(name, value))
	}
	return opts, nil
}

// RunCmd runs a tool with inherited streams.
type RunCmd struct {
	ToolArgs `embed:""`
}

// ReadCmd prints a tool's standard output.
type ReadCmd struct {
	ToolArgs `embed:""`
}

// WriteCmd feeds text to a tool's standard input.
type WriteCmd struct {
	Input string `short:"i" default:"-" help:"Text for the tool's stdin; - reads gscript's own stdin."`

	ToolArgs `embed:""`
}

// StartCmd starts a tool without resolving its exit code.
type StartCmd struct {
	ToolArgs `embed:""`
}

// ExecCmd replaces the process with a tool.
type ExecCmd struct {
	ToolArgs `embed:""`
}

// BuildCmd prints a call's argument vector.
type BuildCmd struct {
	ToolArgs `embed:""`
}

// FindCmd checks that a program starts.
type FindCmd struct {
	Program string   `arg:"" help:"Program name."`
	Args    []string `arg:"" optional:"" help:"Arguments that make the program exit quickly, e.g. --help."`
}

// CommandsCmd lists installed tools.
type CommandsCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}
