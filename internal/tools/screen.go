// ABOUTME: Scroll, wait, and screen-refresh tools
// ABOUTME: get_screen_update only acknowledges; the agent loop performs the capture

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/desktop"
)

const (
	defaultScrollAmount = 3
	defaultWait         = time.Second
	maxWait             = time.Minute
)

// NewScrollTool creates the scroll tool.
func NewScrollTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "scroll",
		description: "Scroll the view under the mouse cursor.",
		parameters: json.RawMessage(`{
			"type": "object",
			"required": ["direction"],
			"properties": {
				"direction": {"type": "string", "enum": ["up", "down", "left", "right"]},
				"amount":    {"type": "integer", "minimum": 1, "description": "Scroll steps (default 3)"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			dir, err := in.str("direction")
			if err != nil {
				return errResult(err)
			}
			amount := in.integerOr("amount", defaultScrollAmount)
			if err := d.Scroll(ctx, desktop.Direction(dir), amount); err != nil {
				return errResult(fmt.Errorf("scrolling: %w", err))
			}
			return agent.Success(fmt.Sprintf("Scrolled %s by %d", dir, amount))
		},
	}
}

// NewWaitTool creates the wait tool. The pause ends early when ctx is cancelled.
func NewWaitTool() agent.Tool {
	return &tool{
		name:        "wait",
		description: "Wait for the screen to settle, e.g. after opening an application.",
		parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"ms": {"type": "integer", "minimum": 0, "description": "Milliseconds to wait (default 1000, max 60000)"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			d := time.Duration(in.integerOr("ms", int(defaultWait/time.Millisecond))) * time.Millisecond
			d = min(max(d, 0), maxWait)

			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return errResult(fmt.Errorf("wait interrupted: %w", ctx.Err()))
			case <-timer.C:
			}
			return agent.Success(fmt.Sprintf("Waited %dms", d.Milliseconds()))
		},
	}
}

// NewScreenUpdateTool creates the get_screen_update tool.
func NewScreenUpdateTool() agent.Tool {
	return &tool{
		name:        agent.ScreenUpdateTool,
		description: "Capture the current screen again after an action changed it.",
		parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
		execute: func(context.Context, args) agent.ToolResult {
			return agent.Success("Screen update requested")
		},
	}
}
