// Package policy decides what a finished tool invocation means to its
// caller.
//
// Every blocking invocation strategy hands its exit code to a Resolver
// together with the error-handling Mode the caller selected:
//
//	res, err := resolver.Resolve(ctx, code, policy.Invocation{Tool: "g.region", Args: args}, policy.ModeRaise, stderr)
//
// The modes are checked in a fixed order: status returns the code as the
// result, success returns the caller's result, ignore returns it regardless
// of the code, fatal reports a message and aborts, exit terminates the host
// with the tool's code, and raise (the default) returns an *InvocationError.
//
// State holds the process-wide switches the resolver reads: whether fatal
// errors are returned instead of terminating the host, whether stderr of
// blocking invocations is captured, and the memoized debug level.
package policy
