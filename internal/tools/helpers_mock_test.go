// ABOUTME: Test doubles for the tools package: a replaying provider and corpus fixtures
// ABOUTME: The provider records requests so nested search runs can be inspected

package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/corpus"
	"github.com/mauromedda/automate-go/pkg/ai"
)

type mockProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	repeat    *ai.Response
	err       error
	requests  []ai.Request
}

func (m *mockProvider) Complete(_ context.Context, req *ai.Request) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *req
	cp.Messages = append([]ai.Message(nil), req.Messages...)
	m.requests = append(m.requests, cp)
	idx := len(m.requests) - 1

	if m.err != nil {
		return nil, m.err
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	if m.repeat != nil {
		return m.repeat, nil
	}
	return nil, errors.New("no more mock responses")
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockProvider) request(i int) ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[i]
}

func text(s string) *ai.Response {
	return &ai.Response{Text: s, FinishReason: "stop"}
}

func invoke(id, name, args string) *ai.Response {
	return &ai.Response{
		ToolCalls:    []ai.ToolCall{{ID: id, Name: name, Arguments: args}},
		FinishReason: "tool_calls",
	}
}

func testSettings() *config.Settings {
	s := config.Default()
	s.APIKey = "sk-test"
	return s
}

const githubGuide = "# GitHub Login\n\n1. Open github.com\n2. Click Sign in\n"

// guideStore returns a corpus with one website guide and an empty category.
func guideStore(t *testing.T) *corpus.Store {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "websites"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "workflows"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "websites", "github.md"), []byte(githubGuide), 0o644))
	return corpus.Open(root)
}
