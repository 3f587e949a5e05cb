// ABOUTME: Desktop selection for platforms without an effector implementation
// ABOUTME: Always returns Unsupported

//go:build !linux

package desktop

// New returns the desktop implementation for this platform.
func New(string, int) Desktop {
	return Unsupported{}
}
