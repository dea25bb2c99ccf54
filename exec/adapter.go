package exec

import (
	osexec "os/exec"
	"path/filepath"
	"strings"
)

// Adapter applies platform launch rules to a prepared command before it
// starts. One adapter is chosen per platform by DefaultAdapter.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string

	// Prepare adjusts cmd in place. cmd.Path holds the resolved executable.
	Prepare(cmd *osexec.Cmd) error
}

// NativeAdapter launches the resolved executable directly.
type NativeAdapter struct{}

// Name implements Adapter.
func (NativeAdapter) Name() string { return "native" }

// Prepare implements Adapter.
func (NativeAdapter) Prepare(*osexec.Cmd) error { return nil }

// directExtensions can be started by CreateProcess without a shell.
var directExtensions = map[string]struct{}{
	".com": {},
	".exe": {},
	".bat": {},
	".cmd": {},
}

// NeedsShell reports whether path must be started through cmd.exe, which is
// the case for anything not natively executable, e.g. scripts run through a
// file association.
func NeedsShell(path string) bool {
	_, ok := directExtensions[strings.ToLower(filepath.Ext(path))]
	return !ok
}

// ShellCommandLine renders the cmd.exe command line that runs args through
// comspec.
func ShellCommandLine(comspec string, args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = EscapeShellArg(arg)
	}
	return quoteArg(comspec) + ` /d /s /c "` + strings.Join(escaped, " ") + `"`
}

// cmdMetaChars are interpreted by cmd.exe and must be caret-escaped.
const cmdMetaChars = `()%!^"<>&|`

// EscapeShellArg escapes a single argument for a cmd.exe command line: the
// argument is quoted by the CommandLineToArgvW rules and every cmd.exe
// metacharacter is then prefixed with a caret.
func EscapeShellArg(arg string) string {
	quoted := quoteArg(arg)
	var b strings.Builder
	b.Grow(len(quoted) + 8)
	for _, r := range quoted {
		if strings.ContainsRune(cmdMetaChars, r) {
			b.WriteByte('^')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteArg quotes s so CommandLineToArgvW parses it back unchanged.
func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, " \t\n\v\"") {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			slashes++
		case '"':
			for ; slashes > 0; slashes-- {
				b.WriteByte('\\')
			}
			b.WriteByte('\\')
		default:
			slashes = 0
		}
		b.WriteByte(c)
	}
	// Backslashes before the closing quote must be doubled.
	for ; slashes > 0; slashes-- {
		b.WriteByte('\\')
	}
	b.WriteByte('"')
	return b.String()
}
