// ABOUTME: YAML frontmatter parsing and title extraction for guide files
// ABOUTME: Title precedence: frontmatter title, first "# " heading, file stem

package corpus

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fmDelim = "---"

// Frontmatter holds the guide metadata recognized in the YAML header.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// ParseFrontmatter splits content into its YAML header and body.
// Content without an opening "---" line has no header and is returned whole.
func ParseFrontmatter(content string) (Frontmatter, string, error) {
	var fm Frontmatter

	text := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(text, fmDelim+"\n") {
		return fm, content, nil
	}
	rest := text[len(fmDelim)+1:]

	var header, body string
	switch {
	case rest == fmDelim || strings.HasPrefix(rest, fmDelim+"\n"):
		body = strings.TrimPrefix(rest[len(fmDelim):], "\n")
	default:
		var ok bool
		header, body, ok = strings.Cut(rest, "\n"+fmDelim)
		if !ok {
			return fm, "", errors.New("unterminated frontmatter: missing closing ---")
		}
		body = strings.TrimPrefix(body, "\n")
	}

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return fm, body, nil
}

// Title derives a display title for a guide.
func Title(name, content string) string {
	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		body = content
	}
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t
	}
	for _, line := range strings.Split(body, "\n") {
		if h, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			if h = strings.TrimSpace(h); h != "" {
				return h
			}
		}
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
