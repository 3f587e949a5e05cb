// ABOUTME: Headless print mode with text, JSON, and stream-JSON formatters for agent runs
// ABOUTME: Observes loop events as they happen and renders the final AgentResult

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/reflow/wordwrap"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/telemetry"
)

// Output formats.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatStreamJSON = "stream-json"
)

// Config configures print mode.
type Config struct {
	Format   string    // "text" (default), "json", "stream-json"
	Out      io.Writer // defaults to os.Stdout
	Width    int       // display width for truncating tool results; 0 disables
	Markdown bool      // render the final response with glamour
}

// Printer renders one agent run. OnEvent is safe to pass as an event observer.
type Printer struct {
	mu    sync.Mutex
	f     formatter
	usage *telemetry.Summary
}

// New creates a Printer for cfg.
func New(cfg Config) *Printer {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	var f formatter
	switch cfg.Format {
	case FormatJSON:
		f = &jsonFormatter{out: cfg.Out}
	case FormatStreamJSON:
		f = &streamJSONFormatter{out: cfg.Out}
	default:
		f = &textFormatter{out: cfg.Out, width: cfg.Width, markdown: cfg.Markdown}
	}
	return &Printer{f: f}
}

// OnEvent renders a loop event.
func (p *Printer) OnEvent(evt agent.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.f.event(evt)
}

// SetUsage attaches token usage to the final output. Call it before Finish.
func (p *Printer) SetUsage(s telemetry.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage = &s
}

// Finish renders the outcome of the run and returns err unchanged.
func (p *Printer) Finish(res *agent.AgentResult, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.f.err(err)
		return err
	}
	p.f.end(res, p.usage)
	return nil
}

type formatter interface {
	event(evt agent.Event)
	err(e error)
	end(res *agent.AgentResult, usage *telemetry.Summary)
}

// textFormatter writes styled, human-readable progress.
// Assistant text is held until we know whether it is a thought or the final answer.
type textFormatter struct {
	out      io.Writer
	width    int
	markdown bool
	pending  string
}

func (f *textFormatter) event(evt agent.Event) {
	switch evt.Type {
	case agent.EventAssistantText:
		f.pending = evt.Text
	case agent.EventToolStart:
		f.flushThought()
		args, _ := json.Marshal(evt.ToolArgs)
		fmt.Fprintf(f.out, "%s %s\n", toolStyle.Render("→ "+evt.ToolName), f.truncate(string(args), 4+len(evt.ToolName)))
	case agent.EventToolEnd:
		if evt.Step == nil {
			return
		}
		style, mark := okStyle, "✓"
		if !evt.Step.Success {
			style, mark = errStyle, "✗"
		}
		fmt.Fprintf(f.out, "  %s\n", style.Render(mark+" "+f.truncate(evt.Step.Result, 4)))
	case agent.EventRefresh:
		fmt.Fprintf(f.out, "  %s\n", noteStyle.Render("screen refreshed"))
	case agent.EventNudge:
		f.flushThought()
		fmt.Fprintf(f.out, "  %s\n", noteStyle.Render("answer rejected: "+evt.Text))
	}
}

func (f *textFormatter) flushThought() {
	if f.pending == "" {
		return
	}
	fmt.Fprintln(f.out, thoughtStyle.Render(f.wrap(f.pending)))
	f.pending = ""
}

// wrap breaks prose at word boundaries to the output width.
func (f *textFormatter) wrap(s string) string {
	if f.width <= 0 {
		return s
	}
	return wordwrap.String(s, f.width)
}

func (f *textFormatter) truncate(s string, indent int) string {
	if f.width <= 0 {
		return s
	}
	return truncateToWidth(s, f.width-indent)
}

func (f *textFormatter) err(e error) {
	fmt.Fprintln(f.out, errStyle.Render("error: "+e.Error()))
}

func (f *textFormatter) end(res *agent.AgentResult, usage *telemetry.Summary) {
	f.pending = ""
	fmt.Fprintln(f.out)
	if !res.Success {
		fmt.Fprintln(f.out, noteStyle.Render(res.FinalResponse))
	} else if f.markdown {
		fmt.Fprintln(f.out, renderMarkdown(res.FinalResponse, max(f.width, 20)))
	} else {
		fmt.Fprintln(f.out, f.wrap(res.FinalResponse))
	}
	summary := fmt.Sprintf("%d step(s), %d iteration(s)", len(res.Steps), res.Iterations)
	if usage != nil {
		summary += ", " + usage.String()
	}
	fmt.Fprintln(f.out, summaryStyle.Render(summary))
}

// jsonFormatter writes the AgentResult as a single JSON object at the end.
type jsonFormatter struct {
	out io.Writer
}

type jsonError struct {
	Error string `json:"error"`
}

type jsonResult struct {
	*agent.AgentResult
	Usage *telemetry.Summary `json:"usage,omitempty"`
}

func (f *jsonFormatter) event(agent.Event) {}

func (f *jsonFormatter) err(e error) {
	writeJSON(f.out, jsonError{Error: e.Error()}, true)
}

func (f *jsonFormatter) end(res *agent.AgentResult, usage *telemetry.Summary) {
	writeJSON(f.out, jsonResult{AgentResult: res, Usage: usage}, true)
}

// streamJSONFormatter writes one JSON line per event.
type streamJSONFormatter struct {
	out io.Writer
}

type streamEvent struct {
	Type      string         `json:"type"`
	Iteration int            `json:"iteration,omitempty"`
	Text      string         `json:"text,omitempty"`
	Tool      string         `json:"tool,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	Result    string         `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Success   *bool          `json:"success,omitempty"`
}

var eventNames = map[agent.EventType]string{
	agent.EventAgentStart:    "start",
	agent.EventAgentEnd:      "end",
	agent.EventAssistantText: "text",
	agent.EventToolStart:     "tool_start",
	agent.EventToolEnd:       "tool_end",
	agent.EventRefresh:       "refresh",
	agent.EventNudge:         "nudge",
}

func (f *streamJSONFormatter) event(evt agent.Event) {
	out := streamEvent{
		Type:      eventNames[evt.Type],
		Iteration: evt.Iteration,
		Text:      evt.Text,
		Tool:      evt.ToolName,
	}
	switch evt.Type {
	case agent.EventToolStart:
		out.Args = evt.ToolArgs
	case agent.EventToolEnd:
		if evt.Step != nil {
			out.Result = evt.Step.Result
		}
	case agent.EventAgentEnd:
		if evt.Result != nil {
			ok := evt.Result.Success
			out.Success = &ok
			out.Text = evt.Result.FinalResponse
		}
	}
	writeJSON(f.out, out, false)
}

func (f *streamJSONFormatter) err(e error) {
	writeJSON(f.out, streamEvent{Type: "error", Error: e.Error()}, false)
}

func (f *streamJSONFormatter) end(_ *agent.AgentResult, usage *telemetry.Summary) {
	if usage != nil {
		writeJSON(f.out, struct {
			Type  string             `json:"type"`
			Usage *telemetry.Summary `json:"usage"`
		}{Type: "usage", Usage: usage}, false)
	}
}

func writeJSON(w io.Writer, v any, indent bool) {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}
