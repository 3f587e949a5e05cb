// ABOUTME: guide_search tool: a nested agent loop that browses the guide corpus for a query
// ABOUTME: Answers with a full guide or the NO_GUIDE_FOUND sentinel

package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/corpus"
	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
)

const (
	// GuideSearchIterations bounds the nested search loop.
	GuideSearchIterations = 10

	guideReadTool = "guide_read"
	readNudge     = "Use guide_read to load the full guide before answering."
)

// NewGuideSearchTool creates the guide_search tool. Each invocation runs an
// independent sub-agent over store with its own message history.
func NewGuideSearchTool(p ai.Provider, s *config.Settings, store *corpus.Store) (agent.Tool, error) {
	reg, err := NewGuideRegistry(store)
	if err != nil {
		return nil, err
	}

	return &tool{
		name:        "guide_search",
		description: "Search the guides library for step-by-step instructions about an application, website, or workflow.",
		parameters: json.RawMessage(`{
			"type": "object",
			"required": ["query"],
			"properties": {
				"query": {"type": "string", "description": "What you need a guide for, e.g. 'log in to github'"}
			}
		}`),
		execute: func(ctx context.Context, in args) agent.ToolResult {
			query, err := in.str("query")
			if err != nil {
				return errResult(err)
			}

			loop := &agent.Loop{
				Provider:      p,
				Registry:      reg,
				Model:         s.Model,
				MaxTokens:     s.MaxTokens,
				Temperature:   s.Temperature,
				MaxIterations: GuideSearchIterations,
				Review:        requireGuideRead,
				Logger:        pilog.With("agent", "guide_search"),
				Name:          "guide_search",
			}
			res, err := loop.Run(ctx, []ai.Message{
				ai.NewTextMessage(ai.RoleSystem, agent.GuideSearchPrompt),
				ai.NewTextMessage(ai.RoleUser, "Find a guide for: "+query),
			})
			if err != nil {
				return errResult(err)
			}
			return agent.Success(searchAnswer(res))
		},
	}, nil
}

// requireGuideRead rejects a guide answer until a guide was read in full.
// Empty and sentinel answers are always accepted.
func requireGuideRead(answer string, steps []agent.AgentStep) string {
	if a := strings.TrimSpace(answer); a == "" || a == agent.NoGuideFound {
		return ""
	}
	for _, s := range steps {
		if s.Action == guideReadTool && s.Success {
			return ""
		}
	}
	return readNudge
}

func searchAnswer(res *agent.AgentResult) string {
	answer := strings.TrimSpace(res.FinalResponse)
	if !res.Success || answer == "" || answer == agent.NoGuideFound {
		return agent.NoGuideFound
	}
	return res.FinalResponse
}
