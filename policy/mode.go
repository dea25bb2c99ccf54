package policy

import (
	"strings"

	"github.com/jmgilman/go/gscript/errors"
)

// Mode selects how a non-zero exit code is handled.
type Mode string

const (
	// ModeRaise returns an *InvocationError. It is the default.
	ModeRaise Mode = "raise"

	// ModeFatal reports a message and aborts, or returns a *FatalError when
	// raise-on-fatal is set.
	ModeFatal Mode = "fatal"

	// ModeStatus returns the exit code as the result, even when it is zero.
	ModeStatus Mode = "status"

	// ModeExit terminates the host with the tool's exit code.
	ModeExit Mode = "exit"

	// ModeIgnore returns the caller's result regardless of the exit code.
	ModeIgnore Mode = "ignore"
)

// Modes lists every valid mode.
var Modes = []Mode{ModeRaise, ModeFatal, ModeStatus, ModeExit, ModeIgnore}

// ParseMode parses a mode name case-insensitively. The empty string is
// ModeRaise.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeRaise, nil
	}
	if !m.Valid() {
		return "", invalidMode(s)
	}
	return m, nil
}

// Valid reports whether m names a mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeRaise, ModeFatal, ModeStatus, ModeExit, ModeIgnore:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

func invalidMode(s string) error {
	return errors.WithContextMap(
		errors.Newf(errors.CodeInvalidMode, "unknown error handling mode %q", s),
		map[string]interface{}{"mode": s},
	)
}
