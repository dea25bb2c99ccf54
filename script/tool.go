package script

import (
	"context"

	"github.com/jmgilman/go/gscript/exec"
)

// Tool binds a tool name to a Session so frequent calls can omit it:
//
//	region := session.Tool("g.region")
//	out, err := region.Read(ctx, script.Flags("g"))
//
// Options given to Session.Tool are applied before the per-call options.
type Tool struct {
	session *Session
	name    string
	opts    []CallOption
}

// Tool returns a Tool for name.
func (s *Session) Tool(name string, opts ...CallOption) *Tool {
	return &Tool{session: s, name: name, opts: opts}
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.name
}

// With returns a copy of t with opts appended to its bound options.
func (t *Tool) With(opts ...CallOption) *Tool {
	return &Tool{session: t.session, name: t.name, opts: t.merge(opts)}
}

// Build returns the argument vector of a call.
func (t *Tool) Build(opts ...CallOption) []string {
	return t.session.Build(t.name, t.merge(opts)...)
}

// Start runs Session.Start for the tool.
func (t *Tool) Start(ctx context.Context, opts ...CallOption) (*exec.Process, error) {
	return t.session.Start(ctx, t.name, t.merge(opts)...)
}

// Pipe runs Session.Pipe for the tool.
func (t *Tool) Pipe(ctx context.Context, opts ...CallOption) (*exec.Process, error) {
	return t.session.Pipe(ctx, t.name, t.merge(opts)...)
}

// Feed runs Session.Feed for the tool.
func (t *Tool) Feed(ctx context.Context, opts ...CallOption) (*exec.Process, error) {
	return t.session.Feed(ctx, t.name, t.merge(opts)...)
}

// Run runs Session.Run for the tool.
func (t *Tool) Run(ctx context.Context, opts ...CallOption) (int, error) {
	return t.session.Run(ctx, t.name, t.merge(opts)...)
}

// Read runs Session.Read for the tool.
func (t *Tool) Read(ctx context.Context, opts ...CallOption) (string, error) {
	return t.session.Read(ctx, t.name, t.merge(opts)...)
}

// Capture runs Session.Capture for the tool.
func (t *Tool) Capture(ctx context.Context, opts ...CallOption) (*Outcome, error) {
	return t.session.Capture(ctx, t.name, t.merge(opts)...)
}

// Write runs Session.Write for the tool.
func (t *Tool) Write(ctx context.Context, stdin string, opts ...CallOption) (int, error) {
	return t.session.Write(ctx, t.name, stdin, t.merge(opts)...)
}

// Exec runs Session.Exec for the tool.
func (t *Tool) Exec(ctx context.Context, opts ...CallOption) error {
	return t.session.Exec(ctx, t.name, t.merge(opts)...)
}

func (t *Tool) merge(opts []CallOption) []CallOption {
	merged := make([]CallOption, 0, len(t.opts)+len(opts))
	merged = append(merged, t.opts...)
	return append(merged, opts...)
}
