// ABOUTME: Guide output truncation with dual line+byte limits and UTF-8 safe boundaries
// ABOUTME: Keeps the head of oversized guides so tool messages stay within the model context

package tools

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxLines = 2000
	DefaultMaxBytes = 50 * 1024 // 50KB
)

// TruncateResult holds the outcome of a truncation.
type TruncateResult struct {
	Content    string
	Truncated  bool
	TotalLines int
	TotalBytes int
	Reason     string // "line_limit", "byte_limit", or ""
}

// TruncateHead keeps the first maxLines lines and first maxBytes bytes.
// If both limits are exceeded, byte_limit wins. The result is always valid UTF-8.
func TruncateHead(content string, maxLines, maxBytes int) TruncateResult {
	lines := strings.Split(content, "\n")
	result := TruncateResult{
		Content:    content,
		TotalLines: len(lines),
		TotalBytes: len(content),
	}
	if content == "" {
		return result
	}

	if len(lines) > maxLines {
		result.Content = strings.Join(lines[:maxLines], "\n")
		result.Truncated = true
		result.Reason = "line_limit"
	}
	if len(result.Content) > maxBytes {
		result.Content = truncateToUTF8Boundary(result.Content, maxBytes)
		result.Truncated = true
		result.Reason = "byte_limit"
	}
	return result
}

// limitGuide applies the default limits and appends a notice when content was cut.
func limitGuide(content string) string {
	r := TruncateHead(content, DefaultMaxLines, DefaultMaxBytes)
	if !r.Truncated {
		return r.Content
	}
	return fmt.Sprintf("%s\n\n[guide truncated: %s, %d lines / %d bytes total]", r.Content, r.Reason, r.TotalLines, r.TotalBytes)
}

// truncateToUTF8Boundary cuts s to at most maxBytes without splitting a rune.
func truncateToUTF8Boundary(s string, maxBytes int) string {
	if maxBytes >= len(s) {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
