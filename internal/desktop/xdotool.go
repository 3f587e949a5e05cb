// ABOUTME: X11 desktop implementation driving xdotool and an external screenshot command
// ABOUTME: Key names are mapped to X keysyms; element trees are not available on X11

package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec, folding stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// XDoTool implements Desktop on X11.
type XDoTool struct {
	run         Runner
	captureCmd  []string
	maxImageDim int
}

var _ Desktop = (*XDoTool)(nil)

// NewXDoTool creates an X11 desktop. captureCmd must write an image to stdout.
func NewXDoTool(run Runner, captureCmd string, maxImageDim int) *XDoTool {
	if run == nil {
		run = ExecRunner
	}
	return &XDoTool{
		run:         run,
		captureCmd:  strings.Fields(captureCmd),
		maxImageDim: maxImageDim,
	}
}

func (x *XDoTool) xdotool(ctx context.Context, args ...string) error {
	_, err := x.run(ctx, "xdotool", args...)
	return err
}

// MoveMouse moves the pointer to absolute screen coordinates.
func (x *XDoTool) MoveMouse(ctx context.Context, px, py int) error {
	return x.xdotool(ctx, "mousemove", "--sync", strconv.Itoa(px), strconv.Itoa(py))
}

// Click moves to (px, py) and clicks once or twice.
func (x *XDoTool) Click(ctx context.Context, px, py int, button Button, double bool) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}
	args := []string{"mousemove", "--sync", strconv.Itoa(px), strconv.Itoa(py), "click"}
	if double {
		args = append(args, "--repeat", "2")
	}
	return x.xdotool(ctx, append(args, code)...)
}

// TypeText types literal text with a per-keystroke delay.
func (x *XDoTool) TypeText(ctx context.Context, text string, delay time.Duration) error {
	return x.xdotool(ctx, "type", "--delay", strconv.FormatInt(delay.Milliseconds(), 10), "--", text)
}

// PressKeys presses keys together as one chord, e.g. ["ctrl", "c"].
func (x *XDoTool) PressKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return errors.New("no keys to press")
	}
	syms := make([]string, len(keys))
	for i, k := range keys {
		syms[i] = keysym(k)
	}
	return x.xdotool(ctx, "key", strings.Join(syms, "+"))
}

// Scroll emits wheel clicks in the given direction.
func (x *XDoTool) Scroll(ctx context.Context, direction Direction, amount int) error {
	var code string
	switch direction {
	case ScrollUp:
		code = "4"
	case ScrollDown:
		code = "5"
	case ScrollLeft:
		code = "6"
	case ScrollRight:
		code = "7"
	default:
		return fmt.Errorf("unknown scroll direction %q", direction)
	}
	if amount < 1 {
		amount = 1
	}
	return x.xdotool(ctx, "click", "--repeat", strconv.Itoa(amount), code)
}

// CaptureScreen runs the capture command and encodes its output as a PNG data URI.
func (x *XDoTool) CaptureScreen(ctx context.Context) (string, error) {
	if len(x.captureCmd) == 0 {
		return "", errors.New("no screen capture command configured")
	}
	raw, err := x.run(ctx, x.captureCmd[0], x.captureCmd[1:]...)
	if err != nil {
		return "", err
	}
	return EncodePNG(raw, x.maxImageDim)
}

// ElementTree is not available through xdotool.
func (x *XDoTool) ElementTree(context.Context, int) (*Element, error) {
	return nil, ErrUnsupported
}

func buttonCode(b Button) (string, error) {
	switch b {
	case ButtonLeft, "":
		return "1", nil
	case ButtonMiddle:
		return "2", nil
	case ButtonRight:
		return "3", nil
	}
	return "", fmt.Errorf("unknown mouse button %q", b)
}

var keysyms = map[string]string{
	"ctrl":      "ctrl",
	"control":   "ctrl",
	"alt":       "alt",
	"shift":     "shift",
	"win":       "super",
	"super":     "super",
	"cmd":       "super",
	"meta":      "super",
	"enter":     "Return",
	"return":    "Return",
	"tab":       "Tab",
	"esc":       "Escape",
	"escape":    "Escape",
	"space":     "space",
	"backspace": "BackSpace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "Prior",
	"pagedown":  "Next",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
}

// keysym maps a friendly key name to an X keysym; unknown names pass through.
func keysym(k string) string {
	lower := strings.ToLower(strings.TrimSpace(k))
	if s, ok := keysyms[lower]; ok {
		return s
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 24 {
			return "F" + lower[1:]
		}
	}
	return lower
}
