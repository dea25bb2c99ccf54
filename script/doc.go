// Package script runs GRASS tools from Go programs.
//
// A Session combines an argument builder, a process launcher and an error
// policy. Each strategy builds the tool's argument vector from CallOptions,
// starts it and, for the blocking strategies, resolves its exit code
// according to the call's error-handling mode:
//
//	s := script.NewSession()
//	out, err := s.Read(ctx, "g.region", script.Flags("g"))
//	if err != nil {
//		var inv *policy.InvocationError
//		if errors.As(err, &inv) {
//			log.Printf("g.region failed with %d: %s", inv.ExitCode, inv.Stderr)
//		}
//		return err
//	}
//
// # Strategies
//
// Start, Pipe and Feed return a live *exec.Process and never look at its
// exit code. Run, Read, Capture and Write wait for the tool and resolve the
// exit code. Exec replaces the current process. Call runs a raw argument
// vector without resolving anything.
//
// # Error handling
//
// The mode is selected per call with Errors, or with the reserved option
// name "errors":
//
//	code, err := s.Run(ctx, "r.mapcalc", script.Opt("expression", "a = 1"), script.Errors(policy.ModeStatus))
//
// With ModeRaise (the default) a non-zero exit returns a
// *policy.InvocationError. ModeFatal and ModeExit terminate the host
// through the session's policy.State.
//
// # Messages
//
// Message, Debug, Verbose, Info, Percent, Warning, Error and Fatal show
// messages through g.message so they follow the GRASS verbosity settings.
// Debug only runs g.message when the session's debug level, read once from
// g.gisenv, is high enough.
//
// Package-level functions use the Default session.
package script
