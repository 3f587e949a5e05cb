// ABOUTME: Desktop capability interface consumed by effector tools and the agent loop
// ABOUTME: Element tree model, screen snapshots, and the ErrUnsupported sentinel

package desktop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pilog "github.com/mauromedda/automate-go/internal/log"
)

// ErrUnsupported is returned by capabilities the current platform cannot provide.
var ErrUnsupported = errors.New("desktop capability not supported on this platform")

// Button identifies a mouse button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// Direction identifies a scroll direction.
type Direction string

const (
	ScrollUp    Direction = "up"
	ScrollDown  Direction = "down"
	ScrollLeft  Direction = "left"
	ScrollRight Direction = "right"
)

// Desktop is the set of effectors and sensors the agent drives.
// Implementations are selected once at startup.
type Desktop interface {
	MoveMouse(ctx context.Context, x, y int) error
	Click(ctx context.Context, x, y int, button Button, double bool) error
	TypeText(ctx context.Context, text string, delay time.Duration) error
	PressKeys(ctx context.Context, keys []string) error
	Scroll(ctx context.Context, direction Direction, amount int) error
	// CaptureScreen returns the active display as a PNG data URI.
	CaptureScreen(ctx context.Context) (string, error)
	// ElementTree returns the focused window's UI elements, depth-bounded.
	ElementTree(ctx context.Context, depth int) (*Element, error)
}

// Bounds is an on-screen rectangle in pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Element is one node of a UI element tree.
type Element struct {
	Name        string     `json:"name"`
	ClassName   string     `json:"class_name"`
	ControlType string     `json:"control_type"`
	Bounds      Bounds     `json:"bounds"`
	Enabled     bool       `json:"enabled"`
	Focused     bool       `json:"focused"`
	Children    []*Element `json:"children,omitempty"`
}

// Render returns the tree as indented JSON for inclusion in prompts.
func (e *Element) Render() string {
	if e == nil {
		return ""
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s (%s)", e.Name, e.ControlType)
	}
	return string(data)
}

// Snapshot is a captured view of the environment.
type Snapshot struct {
	Image string // PNG data URI
	Tree  string // rendered element tree; empty when unavailable
}

// Capture takes a screenshot and an element tree. The image is required;
// a missing element tree only leaves Tree empty.
func Capture(ctx context.Context, d Desktop, depth int) (*Snapshot, error) {
	img, err := d.CaptureScreen(ctx)
	if err != nil {
		return nil, fmt.Errorf("capturing screen: %w", err)
	}

	snap := &Snapshot{Image: img}
	tree, err := d.ElementTree(ctx, depth)
	switch {
	case errors.Is(err, ErrUnsupported):
		pilog.Debug("desktop: element tree unavailable on this platform")
	case err != nil:
		pilog.Warn("desktop: element tree: %v", err)
	default:
		snap.Tree = tree.Render()
	}
	return snap, nil
}
