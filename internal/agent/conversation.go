// ABOUTME: Conversation builder: system prompt assembly and initial/refresh user messages
// ABOUTME: Screen snapshots become ordered text+image parts with high image detail

package agent

import (
	"fmt"
	"strings"

	"github.com/mauromedda/automate-go/internal/corpus"
	"github.com/mauromedda/automate-go/internal/desktop"
	"github.com/mauromedda/automate-go/pkg/ai"
)

// BuildSystemPrompt appends a tool overview and, when index is non-empty,
// the list of available guides to base.
func BuildSystemPrompt(base string, tools []ToolDefinition, index []corpus.IndexEntry) string {
	var b strings.Builder
	b.WriteString(base)

	if len(tools) > 0 {
		b.WriteString("\n\n## Available Tools\n")
		for _, t := range tools {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		}
	}

	if len(index) > 0 {
		b.WriteString("\n## Available Guides\n")
		b.WriteString("The following guides are available. Use guide_search to retrieve relevant content:\n")
		for _, e := range index {
			fmt.Fprintf(&b, "- %s: %s\n", e.Path, e.Title)
		}
	}

	return b.String()
}

// NewConversation returns the system message and the first user message.
// With a snapshot the user message is multimodal (element tree text, then image).
func NewConversation(system, request string, snap *desktop.Snapshot) []ai.Message {
	sys := ai.NewTextMessage(ai.RoleSystem, system)
	if snap == nil {
		return []ai.Message{sys, ai.NewTextMessage(ai.RoleUser, request)}
	}

	text := fmt.Sprintf("Current screen state:\n\nUI Elements:\n%s\n\nUser request: %s", snap.Tree, request)
	return []ai.Message{
		sys,
		ai.NewPartsMessage(ai.RoleUser, ai.TextPart(text), ai.ImagePart(snap.Image, ai.DetailHigh)),
	}
}

// RefreshMessage returns the user message carrying a re-captured screen.
func RefreshMessage(snap *desktop.Snapshot) ai.Message {
	text := fmt.Sprintf("Updated screen state:\n\nUI Elements:\n%s", snap.Tree)
	return ai.NewPartsMessage(ai.RoleUser, ai.TextPart(text), ai.ImagePart(snap.Image, ai.DetailHigh))
}
