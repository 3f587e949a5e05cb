// ABOUTME: Primary desktop agent: builds the conversation and runs the 20-iteration loop
// ABOUTME: Wires screen capture, the refresh special case, and the guide index into the prompt

package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/corpus"
	"github.com/mauromedda/automate-go/internal/desktop"
	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
)

const (
	// MaxIterations bounds the primary loop.
	MaxIterations = 20
	// ScreenUpdateTool is the tool whose execution triggers a fresh screen capture.
	ScreenUpdateTool = "get_screen_update"
)

// Deps are the collaborators of the primary agent, built once at startup.
type Deps struct {
	Settings *config.Settings
	Provider ai.Provider
	Registry *Registry
	Desktop  desktop.Desktop
	Corpus   *corpus.Store // optional; nil omits the guide index
	OnEvent  func(Event)   // optional observer
}

// Agent runs desktop automation tasks.
type Agent struct {
	deps Deps
}

// New creates an Agent.
func New(deps Deps) *Agent {
	return &Agent{deps: deps}
}

// Run performs task. When includeScreen is set and the model supports vision,
// the first user message carries a screenshot and element tree.
// A missing API key fails before any remote call.
func (a *Agent) Run(ctx context.Context, task string, includeScreen bool) (*AgentResult, error) {
	s := a.deps.Settings
	if s == nil || strings.TrimSpace(s.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}

	runID := uuid.NewString()
	logger := pilog.With("run_id", runID).With("agent", "primary")
	logger.Info("run started: model=%s vision=%t screen=%t", s.Model, s.SupportsVision, includeScreen)

	system := BuildSystemPrompt(MainAgentPrompt, a.deps.Registry.Definitions(), a.guideIndex(ctx, logger))

	var snap *desktop.Snapshot
	if includeScreen && s.SupportsVision {
		var err error
		snap, err = desktop.Capture(ctx, a.deps.Desktop, s.TreeDepth)
		if err != nil {
			return nil, fmt.Errorf("initial screen state: %w", err)
		}
	}

	loop := &Loop{
		Provider:      a.deps.Provider,
		Registry:      a.deps.Registry,
		Model:         s.Model,
		MaxTokens:     s.MaxTokens,
		Temperature:   s.Temperature,
		MaxIterations: MaxIterations,
		OnEvent:       a.deps.OnEvent,
		Logger:        logger,
		Name:          "primary",
	}
	if s.SupportsVision {
		loop.Refresh = &RefreshHook{
			Tool: ScreenUpdateTool,
			Capture: func(ctx context.Context) (ai.Message, error) {
				snap, err := desktop.Capture(ctx, a.deps.Desktop, s.TreeDepth)
				if err != nil {
					return ai.Message{}, err
				}
				return RefreshMessage(snap), nil
			},
		}
	}

	res, err := loop.Run(ctx, NewConversation(system, task, snap))
	if err != nil {
		logger.Error("run failed: %v", err)
		return nil, err
	}
	res.RunID = runID
	logger.Info("run finished: success=%t steps=%d iterations=%d", res.Success, len(res.Steps), res.Iterations)
	return res, nil
}

// guideIndex loads the corpus index; failures only drop the guides section.
func (a *Agent) guideIndex(ctx context.Context, logger *pilog.Logger) []corpus.IndexEntry {
	if a.deps.Corpus == nil {
		return nil
	}
	index, err := a.deps.Corpus.Index(ctx)
	if err != nil {
		logger.Warn("guide index unavailable: %v", err)
		return nil
	}
	return index
}
