// ABOUTME: Bubble Tea model for the live run view: spinner, current activity, finished steps
// ABOUTME: The final view stays on screen after the program exits

package interactive

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/automate-go/internal/agent"
)

var (
	taskStyle    = lipgloss.NewStyle().Bold(true)
	thoughtStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type model struct {
	task    string
	spinner spinner.Model
	status  string
	lines   []string
	thought string // last thought shown
	width   int

	done      bool
	cancelled bool
	result    *agent.AgentResult
	err       error
}

func newModel(task string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return model{task: task, spinner: s, status: "Thinking..."}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case EventMsg:
		m.apply(msg.Event)
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) apply(evt agent.Event) {
	switch evt.Type {
	case agent.EventAssistantText:
		m.status = firstLine(evt.Text)
	case agent.EventToolStart:
		args, _ := json.Marshal(evt.ToolArgs)
		m.status = fmt.Sprintf("%s %s", evt.ToolName, args)
	case agent.EventToolEnd:
		if evt.Step == nil {
			return
		}
		if t := evt.Step.Thought; t != "" && t != m.thought {
			m.lines = append(m.lines, thoughtStyle.Render(firstLine(t)))
			m.thought = t
		}
		style, mark := okStyle, "✓"
		if !evt.Step.Success {
			style, mark = errStyle, "✗"
		}
		m.lines = append(m.lines, style.Render(fmt.Sprintf("%s %s: %s", mark, evt.Step.Action, firstLine(evt.Step.Result))))
		m.status = "Thinking..."
	case agent.EventRefresh:
		m.status = "Looking at the screen..."
	case agent.EventNudge:
		m.lines = append(m.lines, noteStyle.Render("answer rejected: "+evt.Text))
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(taskStyle.Render("▸ "+m.task) + "\n")
	for _, l := range m.lines {
		b.WriteString(m.fit(l) + "\n")
	}

	switch {
	case m.cancelled && !m.done:
		b.WriteString(noteStyle.Render("cancelled") + "\n")
	case !m.done:
		b.WriteString(m.fit(m.spinner.View()+" "+m.status) + "\n")
	case m.err != nil:
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	case m.result != nil:
		b.WriteString("\n")
		if m.result.Success {
			b.WriteString(m.result.FinalResponse + "\n")
		} else {
			b.WriteString(noteStyle.Render(m.result.FinalResponse) + "\n")
		}
	}
	return b.String()
}

func (m model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(s)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
