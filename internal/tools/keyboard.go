// ABOUTME: Keyboard effector tools: type text with a per-keystroke delay, press key chords
// ABOUTME: Key names are passed through to the desktop implementation for mapping

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/desktop"
)

// TypeDelay is the pause between typed characters.
const TypeDelay = 30 * time.Millisecond

// NewKeyboardTypeTool creates the keyboard_type tool.
func NewKeyboardTypeTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "keyboard_type",
		description: "Type text using the keyboard.",
		parameters: json.RawMessage(`{
			"type": "object",
			"required": ["text"],
			"properties": {
				"text": {"type": "string", "description": "Text to type"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			text, err := in.str("text")
			if err != nil {
				return errResult(err)
			}
			if err := d.TypeText(ctx, text, TypeDelay); err != nil {
				return errResult(fmt.Errorf("typing: %w", err))
			}
			return agent.Success("Typed: " + text)
		},
	}
}

// NewKeyboardPressTool creates the keyboard_press tool.
func NewKeyboardPressTool(d desktop.Desktop) agent.Tool {
	return &tool{
		name:        "keyboard_press",
		description: "Press a key or key combination, e.g. [\"ctrl\", \"c\"] or [\"enter\"].",
		parameters: json.RawMessage(`{
			"type": "object",
			"required": ["keys"],
			"properties": {
				"keys": {"type": "array", "items": {"type": "string"}, "minItems": 1, "description": "Keys pressed together, modifiers first"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			keys, err := in.strs("keys")
			if err != nil {
				return errResult(err)
			}
			if err := d.PressKeys(ctx, keys); err != nil {
				return errResult(fmt.Errorf("pressing keys: %w", err))
			}
			return agent.Success(fmt.Sprintf("Pressed: %v", keys))
		},
	}
}
