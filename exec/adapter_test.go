package exec

import (
	osexec "os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeShellArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"elevation", "elevation"},
		{"", `^"^"`},
		{"a b", `^"a b^"`},
		{"a&b", `a^&b`},
		{"x|y>z", `x^|y^>z`},
		{"%PATH%", `^%PATH^%`},
		{"(1)", `^(1^)`},
		{"say \"hi\"", `^"say \^"hi\^"^"`},
		{`C:\dir\`, `C:\dir\`},
		{`C:\my dir\`, `^"C:\my dir\\^"`},
		{"caret^", "caret^^"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeShellArg(tt.in))
		})
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", `""`},
		{"two words", `"two words"`},
		{`a"b`, `"a\"b"`},
		{`a\"b`, `"a\\\"b"`},
		{`trail\ `, `"trail\ "`},
		{`end slash\ x\`, `"end slash\ x\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteArg(tt.in))
		})
	}
}

func TestNeedsShell(t *testing.T) {
	assert.False(t, NeedsShell(`C:\grass\bin\g.region.exe`))
	assert.False(t, NeedsShell(`C:\grass\bin\g.proj.BAT`))
	assert.False(t, NeedsShell(`C:\grass\bin\run.cmd`))
	assert.False(t, NeedsShell(`C:\grass\bin\old.com`))
	assert.True(t, NeedsShell(`C:\grass\scripts\r.script.py`))
	assert.True(t, NeedsShell(`C:\grass\scripts\noext`))
}

func TestShellCommandLine(t *testing.T) {
	line := ShellCommandLine(`C:\Windows\System32\cmd.exe`, []string{
		`C:\grass\scripts\r.script.py`, "input=a&b", "title=my map",
	})
	require.Equal(t,
		`C:\Windows\System32\cmd.exe /d /s /c "C:\grass\scripts\r.script.py input=a^&b ^"title=my map^""`,
		line)
}

func TestNativeAdapter(t *testing.T) {
	cmd := osexec.Command("/bin/true", "x")
	require.NoError(t, NativeAdapter{}.Prepare(cmd))
	assert.Equal(t, "/bin/true", cmd.Path)
	assert.Equal(t, []string{"/bin/true", "x"}, cmd.Args)
	assert.Equal(t, "native", NativeAdapter{}.Name())
}
