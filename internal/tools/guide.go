// ABOUTME: Guide corpus tools used by the guide search sub-agent: ls, preview, read
// ABOUTME: Corpus errors (not found, outside corpus, directory) become failed results

package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/corpus"
)

const guidePathSchema = `{
	"type": "object",
	"required": ["file_path"],
	"properties": {
		"file_path": {"type": "string", "description": "Guide path relative to the guides root, e.g. websites/github.md"}
	}
}`

// NewGuideLsTool creates the guide_ls tool.
func NewGuideLsTool(store *corpus.Store) agent.Tool {
	return &tool{
		name:        "guide_ls",
		description: "List a directory of the guides library. Omit path to list the categories.",
		parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Directory relative to the guides root"}
			}
		}`),
		execute: func(_ context.Context, in args) agent.ToolResult {
			entries, err := store.List(in.strOr("path", ""))
			if err != nil {
				return errResult(err)
			}
			return agent.Success(formatEntries(entries))
		},
	}
}

// NewGuidePreviewTool creates the guide_preview tool.
func NewGuidePreviewTool(store *corpus.Store) agent.Tool {
	return &tool{
		name:        "guide_preview",
		description: "Show the first lines of a guide.",
		parameters:  json.RawMessage(guidePathSchema),
		execute: func(_ context.Context, in args) agent.ToolResult {
			path, err := in.str("file_path")
			if err != nil {
				return errResult(err)
			}
			text, err := store.Preview(path)
			if err != nil {
				return errResult(err)
			}
			return agent.Success(text)
		},
	}
}

// NewGuideReadTool creates the guide_read tool.
func NewGuideReadTool(store *corpus.Store) agent.Tool {
	return &tool{
		name:        guideReadTool,
		description: "Read a whole guide.",
		parameters:  json.RawMessage(guidePathSchema),
		execute: func(_ context.Context, in args) agent.ToolResult {
			path, err := in.str("file_path")
			if err != nil {
				return errResult(err)
			}
			text, err := store.Read(path)
			if err != nil {
				return errResult(err)
			}
			return agent.Success(limitGuide(text))
		},
	}
}

// formatEntries renders one entry per line, directories suffixed with "/".
func formatEntries(entries []corpus.Entry) string {
	if len(entries) == 0 {
		return "(empty directory)"
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
