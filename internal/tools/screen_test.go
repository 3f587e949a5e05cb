// ABOUTME: Tests for scroll, wait, and get_screen_update tools
// ABOUTME: Wait is exercised with short durations and cancellation

package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/automate-go/internal/desktop/desktoptest"
)

func TestScroll(t *testing.T) {
	t.Parallel()

	fake := desktoptest.New()
	tool := NewScrollTool(fake)

	res := tool.Execute(context.Background(), map[string]any{"direction": "down"})
	require.True(t, res.Success)
	assert.Equal(t, "Scrolled down by 3", res.Output)

	res = tool.Execute(context.Background(), map[string]any{"direction": "up", "amount": float64(7)})
	require.True(t, res.Success)
	assert.Equal(t, "Scrolled up by 7", res.Output)

	assert.Equal(t, []string{"scroll down 3", "scroll up 7"}, fake.Calls())
}

func TestWait(t *testing.T) {
	t.Parallel()

	start := time.Now()
	res := NewWaitTool().Execute(context.Background(), map[string]any{"ms": float64(20)})
	require.True(t, res.Success)
	assert.Equal(t, "Waited 20ms", res.Output)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWait_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewWaitTool().Execute(ctx, map[string]any{"ms": float64(60000)})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "wait interrupted")
}

func TestScreenUpdate(t *testing.T) {
	t.Parallel()

	tool := NewScreenUpdateTool()
	assert.Equal(t, "get_screen_update", tool.Name())
	res := tool.Execute(context.Background(), map[string]any{})
	assert.True(t, res.Success)
	assert.Equal(t, "Screen update requested", res.Output)
}
