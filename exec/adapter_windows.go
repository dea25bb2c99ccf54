//go:build windows

package exec

import (
	"os"
	osexec "os/exec"
	"syscall"
)

// ShellAdapter starts non-executable files through cmd.exe and hides the
// window of every child.
type ShellAdapter struct{}

// Name implements Adapter.
func (ShellAdapter) Name() string { return "shell" }

// Prepare implements Adapter.
func (ShellAdapter) Prepare(cmd *osexec.Cmd) error {
	attr := &syscall.SysProcAttr{HideWindow: true}
	if NeedsShell(cmd.Path) {
		comspec := os.Getenv("COMSPEC")
		if comspec == "" {
			comspec = `C:\Windows\System32\cmd.exe`
		}
		args := append([]string{cmd.Path}, cmd.Args[1:]...)
		attr.CmdLine = ShellCommandLine(comspec, args)
		cmd.Path = comspec
		cmd.Args = []string{comspec}
	}
	cmd.SysProcAttr = attr
	return nil
}

// DefaultAdapter returns the adapter for the host platform.
func DefaultAdapter() Adapter {
	return ShellAdapter{}
}
