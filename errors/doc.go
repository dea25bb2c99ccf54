// Package errors provides the structured error taxonomy used across gscript.
//
// Every error produced by the launcher, the argument builder, the policy
// resolver and the configuration loader is a PlatformError carrying a string
// ErrorCode and a Category. The category is what callers branch on:
//
//   - CategoryLaunch: the tool could not be located or the OS refused to
//     start it. No result can follow, so these always surface.
//   - CategoryInvocation: the tool ran and exited non-zero. Whether this is
//     visible at all depends on the error-handling mode of the call.
//   - CategoryUsage: the caller did something the layer cannot honor, such as
//     an unknown error-handling mode or a byte write to a text stream.
//   - CategoryConfig: a configuration file or override could not be used.
//   - CategoryInternal: anything else.
//
// The package stays compatible with the standard library (errors.Is,
// errors.As, errors.Unwrap).
//
// # Quick Start
//
//	err := errors.Newf(errors.CodeExecutableNotFound, "cannot find the executable %s", name)
//
//	if errors.IsLaunch(err) {
//	    // nothing ran
//	}
//
// Wrapping keeps the original cause reachable:
//
//	if err := cmd.Start(); err != nil {
//	    return errors.Wrap(err, errors.CodeLaunchFailed, "failed to start g.region")
//	}
//
// Context metadata travels with the error and is emitted by ToJSON:
//
//	err = errors.WithContext(err, "executable", "g.region")
package errors
