// ABOUTME: Desktop implementation for platforms without effector support
// ABOUTME: Every capability returns ErrUnsupported

package desktop

import (
	"context"
	"time"
)

// Unsupported is a Desktop whose every call fails with ErrUnsupported.
type Unsupported struct{}

var _ Desktop = Unsupported{}

func (Unsupported) MoveMouse(context.Context, int, int) error { return ErrUnsupported }

func (Unsupported) Click(context.Context, int, int, Button, bool) error { return ErrUnsupported }

func (Unsupported) TypeText(context.Context, string, time.Duration) error { return ErrUnsupported }

func (Unsupported) PressKeys(context.Context, []string) error { return ErrUnsupported }

func (Unsupported) Scroll(context.Context, Direction, int) error { return ErrUnsupported }

func (Unsupported) CaptureScreen(context.Context) (string, error) { return "", ErrUnsupported }

func (Unsupported) ElementTree(context.Context, int) (*Element, error) { return nil, ErrUnsupported }
