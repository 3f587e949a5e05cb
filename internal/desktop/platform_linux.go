// ABOUTME: Linux desktop selection: xdotool on X11 when available
// ABOUTME: Falls back to Unsupported without a display or without xdotool

//go:build linux

package desktop

import (
	"os"
	"os/exec"

	pilog "github.com/mauromedda/automate-go/internal/log"
)

// New returns the desktop implementation for this platform.
func New(captureCmd string, maxImageDim int) Desktop {
	if os.Getenv("DISPLAY") == "" {
		pilog.Warn("desktop: DISPLAY not set; effectors disabled")
		return Unsupported{}
	}
	if _, err := exec.LookPath("xdotool"); err != nil {
		pilog.Warn("desktop: xdotool not found; effectors disabled")
		return Unsupported{}
	}
	return NewXDoTool(ExecRunner, captureCmd, maxImageDim)
}
