// ABOUTME: run and ping commands: wire settings, desktop, corpus, tools, and the agent
// ABOUTME: Output goes through print mode, or the live view with --live

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/corpus"
	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/internal/mode/interactive"
	"github.com/mauromedda/automate-go/internal/mode/print"
	"github.com/mauromedda/automate-go/internal/telemetry"
	"github.com/mauromedda/automate-go/internal/tools"
	"github.com/mauromedda/automate-go/pkg/ai"
)

// Run performs the task.
func (c *RunCmd) Run(a *app) error {
	task := strings.TrimSpace(strings.Join(c.Task, " "))
	if task == "" {
		return fmt.Errorf("empty task")
	}
	if err := a.settings.Validate(); err != nil {
		return err
	}

	usage := telemetry.NewTracker()
	deps, err := a.agentDeps(usage)
	if err != nil {
		return err
	}
	defer func() { pilog.Info("usage: %s", usage.Summary()) }()

	if c.Live {
		live := interactive.New(task)
		deps.OnEvent = live.OnEvent
		ag := agent.New(deps)
		_, err := live.Run(a.ctx, func(ctx context.Context) (*agent.AgentResult, error) {
			return ag.Run(ctx, task, c.Screen)
		})
		return err
	}

	cfg := print.Config{Out: a.stdout}
	switch {
	case c.JSON:
		cfg.Format = print.FormatJSON
	case c.StreamJSON:
		cfg.Format = print.FormatStreamJSON
	}
	if a.stdout == os.Stdout {
		cfg.Markdown, cfg.Width = print.Terminal(os.Stdout)
	}

	p := print.New(cfg)
	deps.OnEvent = p.OnEvent
	res, err := agent.New(deps).Run(a.ctx, task, c.Screen)
	p.SetUsage(usage.Summary())
	return p.Finish(res, err)
}

// agentDeps builds the primary agent's collaborators. Every model call,
// including nested guide searches, is recorded in usage.
func (a *app) agentDeps(usage *telemetry.Tracker) (agent.Deps, error) {
	s := a.settings
	store, err := a.corpus()
	if err != nil {
		return agent.Deps{}, err
	}
	provider := telemetry.Meter(a.newProvider(s), usage)
	d := a.newDesktop(s)

	reg, err := tools.NewRegistry(tools.Deps{Desktop: d, Corpus: store, Provider: provider, Settings: s})
	if err != nil {
		return agent.Deps{}, fmt.Errorf("building tools: %w", err)
	}
	return agent.Deps{
		Settings: s,
		Provider: provider,
		Registry: reg,
		Desktop:  d,
		Corpus:   store,
	}, nil
}

// corpus opens the guides library, creating the default layout on first use.
func (a *app) corpus() (*corpus.Store, error) {
	store := corpus.Open(a.settings.GuidesDir)
	if err := store.EnsureLayout(); err != nil {
		return nil, fmt.Errorf("preparing guides directory: %w", err)
	}
	return store, nil
}

// pinger is implemented by providers that support a connection probe.
type pinger interface {
	Ping(ctx context.Context, model string) (string, error)
}

// Run checks the endpoint with a one-word request.
func (PingCmd) Run(a *app) error {
	s := a.settings
	if err := s.Validate(); err != nil {
		return err
	}

	var p ai.Provider = a.newProvider(s)
	pg, ok := p.(pinger)
	if !ok {
		return fmt.Errorf("provider does not support ping")
	}
	reply, err := pg.Ping(a.ctx, s.Model)
	if err != nil {
		return fmt.Errorf("ping %s: %w", s.Endpoint, err)
	}
	pilog.Debug("ping reply: %q", reply)
	fmt.Fprintf(a.stdout, "%s via %s: %s\n", s.Model, s.Endpoint, strings.TrimSpace(reply))
	return nil
}
