// ABOUTME: Tests for the usage tracker and the metered provider decorator
// ABOUTME: Verifies accumulation, pricing flags, error passthrough, and concurrent recording

package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/automate-go/pkg/ai"
)

type stubProvider struct {
	resp *ai.Response
	err  error
}

func (s stubProvider) Complete(context.Context, *ai.Request) (*ai.Response, error) {
	return s.resp, s.err
}

func TestTracker_Accumulates(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Record("gpt-4o", ai.Usage{InputTokens: 1000, OutputTokens: 100})
	tr.Record("gpt-4o", ai.Usage{InputTokens: 2000, OutputTokens: 200})

	s := tr.Summary()
	assert.Equal(t, 2, s.Calls)
	assert.Equal(t, 3000, s.InputTokens)
	assert.Equal(t, 300, s.OutputTokens)
	assert.True(t, s.Priced)
	assert.InDelta(t, EstimateCost("gpt-4o", 3000, 300), s.CostUSD, 1e-12)
	assert.Contains(t, s.String(), "2 call(s), 3000 in / 300 out tokens, ~$")
}

func TestTracker_UnknownModelIsUnpriced(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Record("gpt-4o", ai.Usage{InputTokens: 10})
	tr.Record("llava", ai.Usage{InputTokens: 10})

	s := tr.Summary()
	assert.False(t, s.Priced)
	assert.NotContains(t, s.String(), "$")
}

func TestTracker_Concurrent(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record("gpt-4o-mini", ai.Usage{InputTokens: 1, OutputTokens: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tr.Summary().Calls)
}

func TestMeteredProvider(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	p := Meter(stubProvider{resp: &ai.Response{Text: "ok", Usage: ai.Usage{InputTokens: 7, OutputTokens: 3}}}, tr)

	resp, err := p.Complete(context.Background(), &ai.Request{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, Summary{Calls: 1, InputTokens: 7, OutputTokens: 3, CostUSD: EstimateCost("gpt-4o", 7, 3), Priced: true}, tr.Summary())
}

func TestMeteredProvider_PrefersResponseModel(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	p := Meter(stubProvider{resp: &ai.Response{Model: "local-llm", Usage: ai.Usage{InputTokens: 1}}}, tr)
	_, err := p.Complete(context.Background(), &ai.Request{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.False(t, tr.Summary().Priced)
}

func TestMeteredProvider_ErrorNotRecorded(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tr := NewTracker()
	_, err := Meter(stubProvider{err: boom}, tr).Complete(context.Background(), &ai.Request{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tr.Summary().Calls)
}
