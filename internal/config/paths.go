// ABOUTME: Filesystem locations for the config file and the guide corpus
// ABOUTME: Rooted at $AUTOMATE_HOME, or ~/.automate when it is unset

package config

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the data directory.
const HomeEnv = envPrefix + "_HOME"

// GlobalDir returns the data directory holding config.json and guides/.
func GlobalDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".automate"
	}
	return filepath.Join(home, ".automate")
}

// GlobalConfigFile returns the default config file path.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

// DefaultGuidesDir returns the default guide corpus root.
func DefaultGuidesDir() string {
	return filepath.Join(GlobalDir(), "guides")
}

// ensureDir creates path with owner-only permissions; the directory may hold the API key.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
