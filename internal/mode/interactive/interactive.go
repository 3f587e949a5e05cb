// ABOUTME: Live run view: runs the agent in a goroutine while a Bubble Tea program shows progress
// ABOUTME: Ctrl+C or Esc cancels the run's context

package interactive

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/automate-go/internal/agent"
)

// RunFunc performs one agent run.
type RunFunc func(ctx context.Context) (*agent.AgentResult, error)

// Live drives a single run's view. Create it before the agent so OnEvent
// can be registered as the agent's observer.
type Live struct {
	program *tea.Program
}

// New creates a Live view for task.
func New(task string, opts ...tea.ProgramOption) *Live {
	return &Live{program: tea.NewProgram(newModel(task), opts...)}
}

// OnEvent forwards a loop event to the view.
func (l *Live) OnEvent(evt agent.Event) {
	l.program.Send(EventMsg{Event: evt})
}

type outcome struct {
	res *agent.AgentResult
	err error
}

// Run executes run while the view is displayed and returns its outcome.
func (l *Live) Run(ctx context.Context, run RunFunc) (*agent.AgentResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		res, err := run(ctx)
		done <- outcome{res: res, err: err}
		l.program.Send(DoneMsg{Result: res, Err: err})
	}()

	final, err := l.program.Run()
	if m, ok := final.(model); err != nil || (ok && m.cancelled) {
		cancel()
	}
	out := <-done
	if err != nil {
		return nil, fmt.Errorf("running live view: %w", err)
	}
	return out.res, out.err
}
