package command

// Flags holds the single-character flags and the standard override switches.
type Flags struct {
	// Chars are the single-character flags, e.g. "pg". A leading dash is optional.
	Chars string

	// Overwrite emits --o.
	Overwrite bool

	// Quiet emits --q.
	Quiet bool

	// Verbose emits --v.
	Verbose bool

	// SuperQuiet emits --qq.
	SuperQuiet bool
}

// Option is a single named option. Value may be a string, []byte, any
// integer or float, a bool, a fmt.Stringer, a slice or array of those, or nil
// (the option is skipped).
type Option struct {
	Name  string
	Value any
}

// Opt is shorthand for Option{Name: name, Value: value}.
func Opt(name string, value any) Option {
	return Option{Name: name, Value: value}
}

// Options is an ordered list of named options. Order is preserved in the
// emitted argument vector.
type Options []Option

// Get returns the value of the last option with the given name.
func (o Options) Get(name string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Name == name {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether an option with the given name is present.
func (o Options) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Reserved lists option names that configure the launcher rather than the tool.
var Reserved = map[string]struct{}{
	"bufsize":            {},
	"executable":         {},
	"stdin":              {},
	"stdout":             {},
	"stderr":             {},
	"preexec_fn":         {},
	"close_fds":          {},
	"cwd":                {},
	"env":                {},
	"universal_newlines": {},
	"text":               {},
	"startupinfo":        {},
	"creationflags":      {},
	"encoding":           {},
	"errors":             {},
}

// IsReserved reports whether name is reserved for the launcher.
func IsReserved(name string) bool {
	_, ok := Reserved[name]
	return ok
}

// Split separates tool options from launcher options, keeping the order of each.
func Split(opts Options) (tool Options, launch Options) {
	for _, o := range opts {
		if IsReserved(o.Name) {
			launch = append(launch, o)
			continue
		}
		tool = append(tool, o)
	}
	return tool, launch
}
