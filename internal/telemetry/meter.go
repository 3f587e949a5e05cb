// ABOUTME: Usage tracker and a provider decorator that records every chat-completion call
// ABOUTME: Shared by the primary loop and nested guide searches, so it is goroutine-safe

package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/mauromedda/automate-go/pkg/ai"
)

// Summary is the accumulated usage of a run.
type Summary struct {
	Calls        int     `json:"calls"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	Priced       bool    `json:"priced"` // false when some model had no known pricing
}

// String renders the summary for a status line.
func (s Summary) String() string {
	out := fmt.Sprintf("%d call(s), %d in / %d out tokens", s.Calls, s.InputTokens, s.OutputTokens)
	if s.Priced && s.CostUSD > 0 {
		out += fmt.Sprintf(", ~$%.4f", s.CostUSD)
	}
	return out
}

// Tracker accumulates token usage and estimated cost.
type Tracker struct {
	mu sync.Mutex
	s  Summary
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{s: Summary{Priced: true}}
}

// Record adds one call's usage for model.
func (t *Tracker) Record(model string, u ai.Usage) {
	_, known := LookupPricing(model)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.Calls++
	t.s.InputTokens += u.InputTokens
	t.s.OutputTokens += u.OutputTokens
	t.s.CostUSD += EstimateCost(model, u.InputTokens, u.OutputTokens)
	t.s.Priced = t.s.Priced && known
}

// Summary returns a snapshot of the accumulated usage.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s
}

// MeteredProvider records the usage of every successful call to the wrapped provider.
type MeteredProvider struct {
	next    ai.Provider
	tracker *Tracker
}

var _ ai.Provider = (*MeteredProvider)(nil)

// Meter wraps p so that its calls are recorded in t.
func Meter(p ai.Provider, t *Tracker) *MeteredProvider {
	return &MeteredProvider{next: p, tracker: t}
}

// Complete forwards req and records the response usage.
// The model reported by the endpoint is preferred over the requested one.
func (m *MeteredProvider) Complete(ctx context.Context, req *ai.Request) (*ai.Response, error) {
	resp, err := m.next.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	model := resp.Model
	if model == "" {
		model = req.Model
	}
	m.tracker.Record(model, resp.Usage)
	return resp, nil
}

// Unwrap returns the wrapped provider.
func (m *MeteredProvider) Unwrap() ai.Provider {
	return m.next
}
