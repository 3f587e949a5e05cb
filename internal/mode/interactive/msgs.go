// ABOUTME: Bubble Tea messages for the live run view
// ABOUTME: Loop events and the final outcome are delivered via Program.Send

package interactive

import "github.com/mauromedda/automate-go/internal/agent"

// EventMsg carries one loop event.
type EventMsg struct{ Event agent.Event }

// DoneMsg signals that the run has finished.
type DoneMsg struct {
	Result *agent.AgentResult
	Err    error
}
