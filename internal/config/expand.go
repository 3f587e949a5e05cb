// ABOUTME: Expands ${VAR} and ${VAR:-default} references and a leading ~ in settings
// ABOUTME: Lets config files point at secrets and home-relative guide directories

package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var envRef = regexp.MustCompile(`\$\{(\w+)(?::-([^}]*))?\}`)

// ResolveEnvVars expands environment references in the string settings and
// a leading "~/" in the path settings.
func ResolveEnvVars(s *Settings) {
	s.Endpoint = expandEnv(s.Endpoint)
	s.APIKey = expandEnv(s.APIKey)
	s.Model = expandEnv(s.Model)
	s.CaptureCommand = expandEnv(s.CaptureCommand)
	s.GuidesDir = expandHome(expandEnv(s.GuidesDir))
}

// expandEnv substitutes ${VAR}; an unset or empty VAR yields the default
// given as ${VAR:-default}, or "".
func expandEnv(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if v := os.Getenv(m[1]); v != "" {
			return v
		}
		return m[2]
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
