// ABOUTME: OpenTelemetry spans for agent runs, model calls, and tool executions
// ABOUTME: Uses the global tracer provider, so spans are no-ops until one is installed

package agent

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mauromedda/automate-go/pkg/ai"
)

const tracerName = "github.com/mauromedda/automate-go/internal/agent"

func (l *Loop) tracer() trace.Tracer {
	if l.Tracer != nil {
		return l.Tracer
	}
	return otel.Tracer(tracerName)
}

func (l *Loop) startLoopSpan(ctx context.Context) (context.Context, trace.Span) {
	name := l.Name
	if name == "" {
		name = "loop"
	}
	ctx, span := l.tracer().Start(ctx, "agent."+name)
	span.SetAttributes(
		attribute.String("agent.model", l.Model),
		attribute.Int("agent.max_iterations", l.MaxIterations),
		attribute.Int("agent.tools", len(l.Registry.Names())),
	)
	return ctx, span
}

func endLoopSpan(span trace.Span, result *AgentResult, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("agent.iterations", result.Iterations),
			attribute.Int("agent.steps", len(result.Steps)),
			attribute.Bool("agent.success", result.Success),
		)
	}
	span.End()
}

func (l *Loop) startModelSpan(ctx context.Context, iter, messages int) (context.Context, trace.Span) {
	ctx, span := l.tracer().Start(ctx, "model.complete")
	span.SetAttributes(
		attribute.Int("model.iteration", iter),
		attribute.Int("model.messages", messages),
	)
	return ctx, span
}

func endModelSpan(span trace.Span, resp *ai.Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("model.tool_calls", len(resp.ToolCalls)),
			attribute.Int("model.input_tokens", resp.Usage.InputTokens),
			attribute.Int("model.output_tokens", resp.Usage.OutputTokens),
		)
	}
	span.End()
}

func (l *Loop) startToolSpan(ctx context.Context, call ai.ToolCall) (context.Context, trace.Span) {
	ctx, span := l.tracer().Start(ctx, "tool."+call.Name)
	span.SetAttributes(
		attribute.String("tool.name", call.Name),
		attribute.String("tool.call_id", call.ID),
	)
	return ctx, span
}

func endToolSpan(span trace.Span, res ToolResult) {
	span.SetAttributes(attribute.Bool("tool.success", res.Success))
	if !res.Success {
		span.SetStatus(codes.Error, res.Error)
	}
	span.End()
}
