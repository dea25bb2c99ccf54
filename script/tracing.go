package script

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmgilman/go/gscript/internal/logging"
	"github.com/jmgilman/go/gscript/policy"
)

// startInvocationSpan starts a span for a strategy call and returns a
// logger tagged with the tool and a fresh invocation id.
func (s *Session) startInvocationSpan(ctx context.Context, strategy, tool string, mode policy.Mode) (context.Context, trace.Span, *logging.Logger) {
	id := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "gscript."+strategy)
	span.SetAttributes(
		attribute.String("tool.name", tool),
		attribute.String("tool.strategy", strategy),
		attribute.String("tool.mode", string(mode)),
		attribute.String("invocation.id", id),
	)
	return ctx, span, s.logger.WithTool(tool).WithInvocation(id)
}

// setExitCode records the exit code of a finished tool.
func setExitCode(span trace.Span, exitCode int) {
	span.SetAttributes(attribute.Int("tool.exit_code", exitCode))
}

// endInvocationSpan ends the span with the command line and any error.
func (s *Session) endInvocationSpan(span trace.Span, line string, err error) {
	span.SetAttributes(attribute.String("tool.command", line))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
