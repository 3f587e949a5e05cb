// ABOUTME: Mouse effector tools: move, click, and double-click at absolute screen coordinates
// ABOUTME: Thin adapters from validated arguments onto the desktop.Desktop capability

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/desktop"
)

const pointSchema = `{
	"type": "object",
	"required": ["x", "y"],
	"properties": {
		"x": {"type": "integer", "description": "X coordinate in screen pixels"},
		"y": {"type": "integer", "description": "Y coordinate in screen pixels"}
	}
}`

// NewMouseMoveTool creates the mouse_move tool.
func NewMouseMoveTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "mouse_move",
		description: "Move the mouse cursor to the given screen coordinates.",
		parameters:  json.RawMessage(pointSchema),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			x, y, err := in.point()
			if err != nil {
				return errResult(err)
			}
			if err := d.MoveMouse(ctx, x, y); err != nil {
				return errResult(fmt.Errorf("moving mouse: %w", err))
			}
			return agent.Success(fmt.Sprintf("Moved mouse to (%d, %d)", x, y))
		},
	}
}

// NewMouseClickTool creates the mouse_click tool.
func NewMouseClickTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "mouse_click",
		description: "Click a mouse button at the given screen coordinates.",
		parameters: json.RawMessage(`{
			"type": "object",
			"required": ["x", "y"],
			"properties": {
				"x":      {"type": "integer", "description": "X coordinate in screen pixels"},
				"y":      {"type": "integer", "description": "Y coordinate in screen pixels"},
				"button": {"type": "string", "enum": ["left", "right", "middle"], "description": "Mouse button (default left)"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			x, y, err := in.point()
			if err != nil {
				return errResult(err)
			}
			button := desktop.Button(in.strOr("button", string(desktop.ButtonLeft)))
			if err := d.Click(ctx, x, y, button, false); err != nil {
				return errResult(fmt.Errorf("clicking: %w", err))
			}
			return agent.Success(fmt.Sprintf("Clicked %s at (%d, %d)", button, x, y))
		},
	}
}

// NewMouseDoubleClickTool creates the mouse_double_click tool.
func NewMouseDoubleClickTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "mouse_double_click",
		description: "Double-click the left mouse button at the given screen coordinates.",
		parameters:  json.RawMessage(pointSchema),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			x, y, err := in.point()
			if err != nil {
				return errResult(err)
			}
			if err := d.Click(ctx, x, y, desktop.ButtonLeft, true); err != nil {
				return errResult(fmt.Errorf("double-clicking: %w", err))
			}
			return agent.Success(fmt.Sprintf("Double-clicked at (%d, %d)", x, y))
		},
	}
}
