// ABOUTME: Core agent types: tool contract, tool results, transcript steps, and loop events
// ABOUTME: Wire-format agnostic; used by the loop, the registry, and tool implementations

package agent

import (
	"context"
	"encoding/json"
	"time"
)

// Tool is the uniform contract every effector and sub-agent exposes.
type Tool interface {
	Name() string
	Description() string
	// Schema returns the JSON Schema of the tool's arguments.
	Schema() json.RawMessage
	Execute(ctx context.Context, args map[string]any) ToolResult
}

// ToolResult holds the outcome of a single tool execution.
// Exactly one of Output (on success) or Error (on failure) is meaningful;
// build values with Success and Failure.
type ToolResult struct {
	Success  bool
	Output   string
	Error    string
	Duration time.Duration
}

// Success returns a successful result carrying output.
func Success(output string) ToolResult {
	return ToolResult{Success: true, Output: output}
}

// Failure returns a failed result carrying msg.
func Failure(msg string) ToolResult {
	return ToolResult{Error: msg}
}

// Text renders the result for the transcript and the tool-role message.
func (r ToolResult) Text() string {
	if r.Success {
		return r.Output
	}
	return "Error: " + r.Error
}

// ToolDefinition describes a tool to the model.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// AgentStep records one executed invocation. Steps are append-only.
type AgentStep struct {
	Thought string         `json:"thought"`
	Action  string         `json:"action"`
	Params  map[string]any `json:"params"`
	Result  string         `json:"result"`
	Success bool           `json:"success"`
}

// AgentResult is the outcome of one loop run.
// Success is false only when the iteration ceiling was reached.
type AgentResult struct {
	RunID         string      `json:"run_id,omitempty"`
	Steps         []AgentStep `json:"steps"`
	FinalResponse string      `json:"final_response"`
	Success       bool        `json:"success"`
	Iterations    int         `json:"iterations"`
}

// EventType identifies the kind of event emitted during a run.
type EventType int

const (
	EventAgentStart    EventType = iota // Loop started
	EventAgentEnd                       // Loop finished (done or ceiling)
	EventAssistantText                  // Model text for the current turn
	EventToolStart                      // Tool invocation began
	EventToolEnd                        // Tool invocation completed; Step is set
	EventRefresh                        // Environment re-captured after the refresh tool
	EventNudge                          // Final answer rejected by review; Text is the nudge
)

// Event is a synchronous notification from the loop to an observer.
type Event struct {
	Type      EventType
	Iteration int
	Text      string
	ToolName  string
	ToolArgs  map[string]any
	Step      *AgentStep
	Result    *AgentResult
}
