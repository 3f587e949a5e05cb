// ABOUTME: Function-backed implementation of agent.Tool used by every built-in tool
// ABOUTME: Tools are declared as data: name, description, JSON Schema, and an execute func

package tools

import (
	"context"
	"encoding/json"

	"github.com/mauromedda/automate-go/internal/agent"
)

type executeFunc func(ctx context.Context, in args) agent.ToolResult

type tool struct {
	name        string
	description string
	parameters  json.RawMessage
	execute     executeFunc
}

var _ agent.Tool = (*tool)(nil)

func (t *tool) Name() string            { return t.name }
func (t *tool) Description() string     { return t.description }
func (t *tool) Schema() json.RawMessage { return t.parameters }

func (t *tool) Execute(ctx context.Context, params map[string]any) agent.ToolResult {
	return t.execute(ctx, args(params))
}
