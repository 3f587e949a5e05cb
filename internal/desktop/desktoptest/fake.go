// ABOUTME: Recording fake Desktop for tests of tools and the agent loop
// ABOUTME: Records every call in order; errors and snapshots are configurable

package desktoptest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mauromedda/automate-go/internal/desktop"
)

// Fake is a Desktop that records calls instead of touching the screen.
type Fake struct {
	mu    sync.Mutex
	calls []string

	// Err, when set, is returned by every effector call.
	Err error
	// Image is returned by CaptureScreen; CaptureErr overrides it.
	Image      string
	CaptureErr error
	// Tree is returned by ElementTree; nil yields desktop.ErrUnsupported.
	Tree *desktop.Element

	captures int
}

var _ desktop.Desktop = (*Fake)(nil)

// New returns a Fake with a placeholder screenshot.
func New() *Fake {
	return &Fake{Image: "data:image/png;base64,AAAA"}
}

func (f *Fake) record(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.Err
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Captures returns how many screenshots were taken.
func (f *Fake) Captures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captures
}

func (f *Fake) MoveMouse(_ context.Context, x, y int) error {
	return f.record("move %d %d", x, y)
}

func (f *Fake) Click(_ context.Context, x, y int, b desktop.Button, double bool) error {
	return f.record("click %d %d %s double=%t", x, y, b, double)
}

func (f *Fake) TypeText(_ context.Context, text string, delay time.Duration) error {
	return f.record("type %q delay=%s", text, delay)
}

func (f *Fake) PressKeys(_ context.Context, keys []string) error {
	return f.record("press %v", keys)
}

func (f *Fake) Scroll(_ context.Context, d desktop.Direction, amount int) error {
	return f.record("scroll %s %d", d, amount)
}

func (f *Fake) CaptureScreen(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captures++
	if f.CaptureErr != nil {
		return "", f.CaptureErr
	}
	return f.Image, nil
}

func (f *Fake) ElementTree(context.Context, int) (*desktop.Element, error) {
	if f.Tree == nil {
		return nil, desktop.ErrUnsupported
	}
	return f.Tree, nil
}
