// ABOUTME: Generic bounded tool-calling loop: model call -> sequential tool execution -> repeat
// ABOUTME: Shared by the primary agent and the guide search sub-agent

package agent

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
)

// CeilingMessage is the final response when the iteration ceiling is reached.
const CeilingMessage = "Maximum iterations reached. Task may be incomplete."

// RefreshHook re-captures the environment after Tool runs. The returned
// message is appended right after that tool's result message.
type RefreshHook struct {
	Tool    string
	Capture func(ctx context.Context) (ai.Message, error)
}

// ReviewFunc inspects a candidate final answer together with the steps so far.
// A non-empty return value rejects the answer and is sent back as a user message.
type ReviewFunc func(answer string, steps []AgentStep) string

// Loop is one parameterization of the bounded agent loop.
// A Loop holds no per-run state; Run may be called concurrently.
type Loop struct {
	Provider      ai.Provider
	Registry      *Registry
	Model         string
	MaxTokens     int
	Temperature   float64
	MaxIterations int

	Refresh *RefreshHook // optional
	Review  ReviewFunc   // optional
	OnEvent func(Event)  // optional; called synchronously
	Logger  *pilog.Logger

	Name   string       // span name suffix; "loop" when empty
	Tracer trace.Tracer // optional; the global tracer when nil
}

// Run drives the conversation until the model answers without invoking tools
// or MaxIterations model calls have been made. The messages slice is copied.
// Only remote-call failures are returned as errors; tool failures are recorded
// as steps and fed back to the model.
func (l *Loop) Run(ctx context.Context, messages []ai.Message) (result *AgentResult, err error) {
	ctx, span := l.startLoopSpan(ctx)
	defer func() { endLoopSpan(span, result, err) }()

	logger := l.Logger
	if logger == nil {
		logger = pilog.With("agent", "loop")
	}

	msgs := make([]ai.Message, len(messages))
	copy(msgs, messages)

	tools := toAITools(l.Registry.Definitions())
	result = &AgentResult{}

	l.emit(Event{Type: EventAgentStart})

	for iter := 1; iter <= l.MaxIterations; iter++ {
		result.Iterations = iter

		callCtx, callSpan := l.startModelSpan(ctx, iter, len(msgs))
		resp, err := l.Provider.Complete(callCtx, &ai.Request{
			Model:       l.Model,
			Messages:    msgs,
			Tools:       tools,
			MaxTokens:   l.MaxTokens,
			Temperature: l.Temperature,
		})
		endModelSpan(callSpan, resp, err)
		if err != nil {
			return nil, fmt.Errorf("remote call (iteration %d): %w", iter, err)
		}
		logger.Debug("iteration %d: %d tool call(s), %d chars of text", iter, len(resp.ToolCalls), len(resp.Text))

		if resp.Text != "" {
			l.emit(Event{Type: EventAssistantText, Iteration: iter, Text: resp.Text})
		}

		if len(resp.ToolCalls) == 0 {
			if l.Review != nil {
				if nudge := l.Review(resp.Text, result.Steps); nudge != "" {
					logger.Info("iteration %d: answer rejected: %s", iter, nudge)
					msgs = append(msgs,
						ai.NewTextMessage(ai.RoleAssistant, resp.Text),
						ai.NewTextMessage(ai.RoleUser, nudge),
					)
					l.emit(Event{Type: EventNudge, Iteration: iter, Text: nudge})
					continue
				}
			}
			result.FinalResponse = resp.Text
			result.Success = true
			l.emit(Event{Type: EventAgentEnd, Iteration: iter, Result: result})
			return result, nil
		}

		msgs = append(msgs, ai.Message{
			Role:      ai.RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			msgs = l.invoke(ctx, logger, iter, resp.Text, call, msgs, result)
		}
	}

	result.FinalResponse = CeilingMessage
	result.Success = false
	logger.Warn("iteration ceiling (%d) reached", l.MaxIterations)
	l.emit(Event{Type: EventAgentEnd, Iteration: l.MaxIterations, Result: result})
	return result, nil
}

// invoke executes one tool call, records the step, and appends the tool-role
// message plus, for the refresh tool, a fresh environment message.
func (l *Loop) invoke(ctx context.Context, logger *pilog.Logger, iter int, thought string, call ai.ToolCall, msgs []ai.Message, result *AgentResult) []ai.Message {
	args, err := ParseToolArgs(call.Arguments)
	if err != nil {
		logger.Warn("malformed arguments for %s (%s); using {}: %v", call.Name, call.ID, err)
		args = make(map[string]any)
	}

	l.emit(Event{Type: EventToolStart, Iteration: iter, ToolName: call.Name, ToolArgs: args})

	toolCtx, span := l.startToolSpan(ctx, call)
	res := l.Registry.Execute(toolCtx, call.Name, args)
	endToolSpan(span, res)
	if !res.Success {
		logger.Info("tool %s failed: %s", call.Name, res.Error)
	} else {
		logger.Debug("tool %s ok in %s", call.Name, res.Duration)
	}

	step := AgentStep{
		Thought: thought,
		Action:  call.Name,
		Params:  args,
		Result:  res.Text(),
		Success: res.Success,
	}
	result.Steps = append(result.Steps, step)
	l.emit(Event{Type: EventToolEnd, Iteration: iter, ToolName: call.Name, ToolArgs: args, Step: &step})

	msgs = append(msgs, ai.NewToolResultMessage(call.ID, step.Result))

	if l.Refresh != nil && call.Name == l.Refresh.Tool {
		msg, err := l.Refresh.Capture(ctx)
		if err != nil {
			logger.Warn("screen refresh failed: %v", err)
			return msgs
		}
		msgs = append(msgs, msg)
		l.emit(Event{Type: EventRefresh, Iteration: iter, ToolName: call.Name})
	}
	return msgs
}

func (l *Loop) emit(evt Event) {
	if l.OnEvent != nil {
		l.OnEvent(evt)
	}
}

// toAITools converts tool definitions into provider tool schemas.
func toAITools(defs []ToolDefinition) []ai.Tool {
	out := make([]ai.Tool, len(defs))
	for i, d := range defs {
		out[i] = ai.Tool{Name: d.Name, Description: d.Description, Parameters: d.Parameters}
	}
	return out
}
