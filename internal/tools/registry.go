// ABOUTME: Tool registries for the primary agent and the guide search sub-agent
// ABOUTME: Built once at startup from the desktop, corpus, provider, and settings

package tools

import (
	"fmt"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/corpus"
	"github.com/mauromedda/automate-go/internal/desktop"
	"github.com/mauromedda/automate-go/pkg/ai"
)

// Deps are the collaborators the primary tools need.
type Deps struct {
	Desktop  desktop.Desktop
	Corpus   *corpus.Store
	Provider ai.Provider
	Settings *config.Settings
}

// NewRegistry builds the primary agent's registry: desktop primitives plus guide_search.
func NewRegistry(deps Deps) (*agent.Registry, error) {
	search, err := NewGuideSearchTool(deps.Provider, deps.Settings, deps.Corpus)
	if err != nil {
		return nil, fmt.Errorf("building guide_search: %w", err)
	}
	return agent.NewRegistry(
		NewMouseMoveTool(deps.Desktop),
		NewMouseClickTool(deps.Desktop),
		NewMouseDoubleClickTool(deps.Desktop),
		NewKeyboardTypeTool(deps.Desktop),
		NewKeyboardPressTool(deps.Desktop),
		NewScrollTool(deps.Desktop),
		NewWaitTool(),
		NewScreenUpdateTool(),
		search,
	)
}

// NewGuideRegistry builds the sub-agent's registry of exactly guide_ls, guide_preview, and guide_read.
func NewGuideRegistry(store *corpus.Store) (*agent.Registry, error) {
	return agent.NewRegistry(
		NewGuideLsTool(store),
		NewGuidePreviewTool(store),
		NewGuideReadTool(store),
	)
}
