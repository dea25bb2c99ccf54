// Package command turns a tool call into an argument vector.
//
// A call is a tool name, a set of Flags and an ordered list of named Options:
//
//	args := command.Build("g.message", command.Flags{Chars: "w"}, command.Options{
//		command.Opt("message", "hello"),
//	})
//	// []string{"g.message", "-w", "message=hello"}
//
// The vector always starts with the tool name, followed by the override
// switches (--o, --q, --v, --qq), the combined flag token and finally the
// name=value tokens in the order they were given. Names reserved for the
// launcher (see Reserved) never become tokens.
package command
