// ABOUTME: Tests for the tool registry: lookup, ordering, schema validation, and panic isolation
// ABOUTME: Unknown tools and invalid arguments must become failed results, never Go errors

package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UnknownTool(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(echoTool("noop"))
	require.NoError(t, err)

	res := reg.Execute(context.Background(), "nonexistent_tool", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown tool: nonexistent_tool", res.Error)
	assert.Equal(t, "Error: Unknown tool: nonexistent_tool", res.Text())
}

func TestRegistry_NamesAndDefinitionsSorted(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(echoTool("wait"), clickTool(), echoTool("guide_search"))
	require.NoError(t, err)

	assert.Equal(t, []string{"guide_search", "mouse_click", "wait"}, reg.Names())

	defs := reg.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "mouse_click", defs[1].Name)
	assert.Equal(t, "Click at coordinates", defs[1].Description)
	assert.JSONEq(t, xySchema, string(defs[1].Parameters))

	tool, ok := reg.Get("wait")
	require.True(t, ok)
	assert.Equal(t, "wait", tool.Name())
	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(echoTool("a"), echoTool("a"))
	assert.ErrorContains(t, err, `duplicate tool "a"`)
}

func TestRegistry_BadSchema(t *testing.T) {
	t.Parallel()

	bad := &funcTool{name: "bad", schema: `{"type": 42}`, fn: func(context.Context, map[string]any) ToolResult {
		return Success("")
	}}
	_, err := NewRegistry(bad)
	assert.ErrorContains(t, err, "compiling schema for bad")
}

func TestRegistry_ValidatesArguments(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(clickTool())
	require.NoError(t, err)
	ctx := context.Background()

	res := reg.Execute(ctx, "mouse_click", map[string]any{"x": float64(1)})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid arguments for mouse_click")
	assert.Contains(t, res.Error, "y")

	res = reg.Execute(ctx, "mouse_click", map[string]any{"x": "ten", "y": float64(2)})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid arguments for mouse_click")

	res = reg.Execute(ctx, "mouse_click", map[string]any{"x": float64(3), "y": float64(4)})
	assert.True(t, res.Success)
	assert.Equal(t, "Clicked left at (3, 4)", res.Output)
	assert.Empty(t, res.Error)
}

func TestRegistry_RecoversPanics(t *testing.T) {
	t.Parallel()

	boom := &funcTool{name: "boom", fn: func(context.Context, map[string]any) ToolResult {
		panic("kaboom")
	}}
	reg, err := NewRegistry(boom)
	require.NoError(t, err)

	res := reg.Execute(context.Background(), "boom", map[string]any{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "kaboom")
}

func TestRegistry_NilArgsBecomeEmpty(t *testing.T) {
	t.Parallel()

	var got map[string]any
	probe := &funcTool{name: "probe", schema: `{"type":"object","properties":{}}`, fn: func(_ context.Context, args map[string]any) ToolResult {
		got = args
		return Success("ok")
	}}
	reg, err := NewRegistry(probe)
	require.NoError(t, err)

	res := reg.Execute(context.Background(), "probe", nil)
	assert.True(t, res.Success)
	assert.NotNil(t, got)
}

func TestToolResultXOR(t *testing.T) {
	t.Parallel()

	ok := Success("done")
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Output)
	assert.Empty(t, ok.Error)
	assert.Equal(t, "done", ok.Text())

	bad := Failure("nope")
	assert.False(t, bad.Success)
	assert.Empty(t, bad.Output)
	assert.Equal(t, "nope", bad.Error)
	assert.Equal(t, "Error: nope", bad.Text())
}
