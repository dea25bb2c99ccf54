package command

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jmgilman/go/gscript/internal/logging"
)

// Builder builds argument vectors. It remembers which deprecated option
// spellings it has already warned about.
type Builder struct {
	logger *logging.Logger
	warn   func(msg string)
	warned sync.Map
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for deprecation warnings.
func WithLogger(logger *logging.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithWarner sets a function that shows deprecation warnings to the user,
// in addition to logging them.
func WithWarner(warn func(msg string)) BuilderOption {
	return func(b *Builder) {
		b.warn = warn
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder atomic.Pointer[Builder]

func init() {
	defaultBuilder.Store(NewBuilder())
}

// SetDefaultLogger replaces the package-level builder used by Build with one
// that logs to logger. It is safe to call while Build runs.
func SetDefaultLogger(logger *logging.Logger) {
	defaultBuilder.Store(NewBuilder(WithLogger(logger)))
}

// Build builds an argument vector with the package-level builder.
func Build(tool string, flags Flags, opts Options) []string {
	return defaultBuilder.Load().Build(tool, flags, opts)
}

// Build returns the argument vector for a tool call.
func (b *Builder) Build(tool string, flags Flags, opts Options) []string {
	args := []string{tool}
	if flags.Overwrite {
		args = append(args, "--o")
	}
	if flags.Quiet {
		args = append(args, "--q")
	}
	if flags.Verbose {
		args = append(args, "--v")
	}
	if flags.SuperQuiet {
		args = append(args, "--qq")
	}
	if flags.Chars != "" {
		// Only the first dash is ours to add; anything else is left for the tool to reject.
		chars := flags.Chars
		if !strings.HasPrefix(chars, "-") {
			chars = "-" + chars
		}
		args = append(args, chars)
	}

	for _, opt := range opts {
		if IsReserved(opt.Name) || isNil(opt.Value) {
			continue
		}
		name := opt.Name
		switch {
		case strings.HasPrefix(name, "_"):
			name = name[1:]
			b.warnLeadingUnderscore(tool, name)
		case strings.HasSuffix(name, "_"):
			name = name[:len(name)-1]
		}
		args = append(args, name+"="+FormatValue(opt.Value))
	}

	return args
}

// Deprecated spelling: kept for old call sites, to be removed with the next major version.
func (b *Builder) warnLeadingUnderscore(tool, name string) {
	if _, loaded := b.warned.LoadOrStore(tool+"\x00"+name, struct{}{}); loaded {
		return
	}
	msg := fmt.Sprintf("To run the tool <%s> add an underscore at the end of the option <%s> instead of the beginning. "+
		"The leading underscore is deprecated and will be removed.", tool, name)
	b.logger.Warn(context.Background(), msg, "tool", tool, "option", "_"+name)
	if b.warn != nil {
		b.warn(msg)
	}
}

// Line renders an argument vector as a single command line for messages.
func Line(args []string) string {
	return strings.Join(args, " ")
}

// FormatValue renders an option value. Slices and arrays are joined with commas.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// formatFloat renders f in the shortest form that round-trips. Integral
// values keep a ".0" suffix and exponents are used only below 1e-4 or from
// 1e16 on, so 1.0 renders as "1.0" and 1234567.0 as "1234567.0".
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
