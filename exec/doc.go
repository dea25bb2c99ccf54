// Package exec launches command-line tools as child processes.
//
// A Launcher resolves the tool on the search path of the call's environment,
// applies the platform launch rules and starts the child, returning a
// Process handle:
//
//	l := exec.New()
//	p, err := l.Start(ctx, []string{"g.region", "-p"}, exec.WithStdout(exec.Pipe))
//	if err != nil {
//		return err
//	}
//	out, _, code, err := p.Communicate(nil)
//
// # Configuration
//
// Options passed to New with WithDefaults apply to every launch; options
// passed to Start override them for that call only:
//
//	l := exec.New(exec.WithDefaults(exec.WithEncoding("latin1")))
//	p, err := l.Start(ctx, args, exec.WithDir("/data"))
//
// # Streams
//
// Each standard stream is inherited from the launcher (the default), piped,
// discarded, or connected to a caller reader or writer. Piped streams are
// exchanged as text unless Bytes mode is requested. When no mode is
// requested the mode is AutoText: text is implied, and a byte write to
// stdin is decoded and retried as text. That fallback is deprecated.
//
// # Platforms
//
// On Windows, files that CreateProcess cannot start directly are run through
// cmd.exe with every argument escaped, and child windows are hidden. On
// other platforms the resolved executable is started as-is. Exec replaces
// the current process where the platform allows it.
//
// # Errors
//
// Resolution and start failures are launch errors
// (errors.CodeExecutableNotFound, errors.CodeLaunchFailed). Mismatched
// stream writes and unknown encodings are usage errors. A non-zero exit
// status is never an error at this level.
package exec
