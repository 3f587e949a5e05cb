// ABOUTME: Shared test doubles for the agent package: replaying provider and function tools
// ABOUTME: The provider snapshots every request so tests can inspect message history

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/mauromedda/automate-go/pkg/ai"
)

// mockProvider replays canned responses and records requests.
type mockProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	repeat    *ai.Response // returned once responses are exhausted, if set
	err       error
	requests  []ai.Request
}

func (m *mockProvider) Complete(_ context.Context, req *ai.Request) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *req
	cp.Messages = append([]ai.Message(nil), req.Messages...)
	m.requests = append(m.requests, cp)
	idx := len(m.requests) - 1

	if m.err != nil {
		return nil, m.err
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	if m.repeat != nil {
		return m.repeat, nil
	}
	return nil, errors.New("no more mock responses")
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockProvider) request(i int) ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[i]
}

// funcTool adapts a function to the Tool interface.
type funcTool struct {
	name   string
	desc   string
	schema string
	fn     func(ctx context.Context, args map[string]any) ToolResult
}

func (f *funcTool) Name() string        { return f.name }
func (f *funcTool) Description() string { return f.desc }

func (f *funcTool) Schema() json.RawMessage {
	if f.schema == "" {
		return nil
	}
	return json.RawMessage(f.schema)
}

func (f *funcTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	return f.fn(ctx, args)
}

const xySchema = `{"type":"object","properties":{"x":{"type":"integer"},"y":{"type":"integer"}},"required":["x","y"]}`

func echoTool(name string) *funcTool {
	return &funcTool{
		name: name,
		desc: "echo " + name,
		fn: func(_ context.Context, args map[string]any) ToolResult {
			return Success(name + " ok")
		},
	}
}

func clickTool() *funcTool {
	return &funcTool{
		name:   "mouse_click",
		desc:   "Click at coordinates",
		schema: xySchema,
		fn: func(_ context.Context, args map[string]any) ToolResult {
			return Success("Clicked left at (" + num(args["x"]) + ", " + num(args["y"]) + ")")
		},
	}
}

func num(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func call(id, name, args string) ai.ToolCall {
	return ai.ToolCall{ID: id, Name: name, Arguments: args}
}

func textResponse(text string) *ai.Response {
	return &ai.Response{Text: text, FinishReason: "stop"}
}

func toolResponse(text string, calls ...ai.ToolCall) *ai.Response {
	return &ai.Response{Text: text, ToolCalls: calls, FinishReason: "tool_calls"}
}
