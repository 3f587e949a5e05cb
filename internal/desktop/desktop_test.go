// ABOUTME: Tests for snapshots, element rendering, and the Unsupported desktop
// ABOUTME: Uses a stub desktop to control capture and tree results

package desktop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDesktop struct {
	Unsupported
	image   string
	capErr  error
	tree    *Element
	treeErr error
}

func (s stubDesktop) CaptureScreen(context.Context) (string, error) { return s.image, s.capErr }

func (s stubDesktop) ElementTree(context.Context, int) (*Element, error) { return s.tree, s.treeErr }

func TestCaptureWithTree(t *testing.T) {
	t.Parallel()

	d := stubDesktop{
		image: "data:image/png;base64,AAAA",
		tree: &Element{
			Name: "Untitled - Notepad", ControlType: "Window", Enabled: true, Focused: true,
			Children: []*Element{{Name: "Text Editor", ControlType: "Edit", Bounds: Bounds{X: 1, Y: 2, Width: 3, Height: 4}}},
		},
	}

	snap, err := Capture(context.Background(), d, 2)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", snap.Image)
	assert.Contains(t, snap.Tree, `"name": "Untitled - Notepad"`)
	assert.Contains(t, snap.Tree, `"control_type": "Edit"`)
	assert.Contains(t, snap.Tree, `"width": 3`)
}

func TestCaptureTreeUnavailable(t *testing.T) {
	t.Parallel()

	for _, treeErr := range []error{ErrUnsupported, errors.New("window vanished")} {
		snap, err := Capture(context.Background(), stubDesktop{image: "img", treeErr: treeErr}, 2)
		require.NoError(t, err)
		assert.Equal(t, "img", snap.Image)
		assert.Empty(t, snap.Tree)
	}
}

func TestCaptureScreenFailure(t *testing.T) {
	t.Parallel()

	_, err := Capture(context.Background(), stubDesktop{capErr: errors.New("no display")}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capturing screen")
}

func TestRenderNil(t *testing.T) {
	t.Parallel()

	var e *Element
	assert.Empty(t, e.Render())
}

func TestUnsupported(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var d Desktop = Unsupported{}

	assert.ErrorIs(t, d.MoveMouse(ctx, 1, 2), ErrUnsupported)
	assert.ErrorIs(t, d.Click(ctx, 1, 2, ButtonLeft, false), ErrUnsupported)
	assert.ErrorIs(t, d.TypeText(ctx, "x", time.Millisecond), ErrUnsupported)
	assert.ErrorIs(t, d.PressKeys(ctx, []string{"a"}), ErrUnsupported)
	assert.ErrorIs(t, d.Scroll(ctx, ScrollDown, 3), ErrUnsupported)
	_, err := d.CaptureScreen(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = d.ElementTree(ctx, 2)
	assert.ErrorIs(t, err, ErrUnsupported)
}
