// ABOUTME: End-to-end tests of the CLI commands through execute with injected collaborators
// ABOUTME: Settings come from a temp config file; the model and desktop are scripted fakes

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/automate-go/internal/agent"
	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/desktop"
	"github.com/mauromedda/automate-go/internal/desktop/desktoptest"
	"github.com/mauromedda/automate-go/internal/telemetry"
	"github.com/mauromedda/automate-go/pkg/ai"
)

type scriptedProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	calls     int
}

func (s *scriptedProvider) Complete(context.Context, *ai.Request) (*ai.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.responses) {
		return nil, errors.New("no more responses")
	}
	r := s.responses[s.calls]
	s.calls++
	return r, nil
}

type harness struct {
	app    *app
	out    *bytes.Buffer
	fake   *desktoptest.Fake
	config string
	guides string
}

// newHarness writes a config file pointing at temp guides and wires fakes.
func newHarness(t *testing.T, apiKey string, responses ...*ai.Response) *harness {
	t.Helper()
	dir := t.TempDir()

	s := config.Default()
	s.APIKey = apiKey
	s.SupportsVision = false
	s.GuidesDir = filepath.Join(dir, "guides")
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, config.Save(cfgPath, s))

	out := &bytes.Buffer{}
	fake := desktoptest.New()
	p := &scriptedProvider{responses: responses}

	a := newApp(context.Background())
	a.stdout = out
	a.stdin = strings.NewReader("")
	a.newProvider = func(*config.Settings) ai.Provider { return p }
	a.newDesktop = func(*config.Settings) desktop.Desktop { return fake }

	return &harness{app: a, out: out, fake: fake, config: cfgPath, guides: s.GuidesDir}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	return execute(h.app, append([]string{"--config", h.config}, args...))
}

func TestCLI_Parse(t *testing.T) {
	t.Parallel()

	var cli CLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "open", "notepad", "--no-screen", "--json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "notepad"}, cli.Run.Task)
	assert.False(t, cli.Run.Screen)
	assert.True(t, cli.Run.JSON)

	cli = CLI{}
	parser, err = kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"run", "x", "--json", "--live"})
	assert.Error(t, err, "output modes are exclusive")
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "sk-test")
	require.NoError(t, h.run("version"))
	assert.Contains(t, h.out.String(), "automate dev")
}

func TestConfigShowRedactsKey(t *testing.T) {
	h := newHarness(t, "sk-1234567890abcd")
	require.NoError(t, h.run("config", "show"))

	var shown map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &shown))
	assert.Equal(t, "sk-...abcd", shown["api_key"])
	assert.Equal(t, "gpt-4o", shown["model"])
	assert.Equal(t, "5m0s", shown["request_timeout"])
}

func TestConfigPathAndInit(t *testing.T) {
	h := newHarness(t, "sk-test")
	require.NoError(t, h.run("config", "path"))
	assert.Equal(t, h.config+"\n", h.out.String())

	err := h.run("config", "init")
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, h.run("config", "init", "--force"))

	s, err := config.Load(h.config)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, s.Model)
}

func TestGuideCommands(t *testing.T) {
	h := newHarness(t, "sk-test")

	h.app.stdin = strings.NewReader("---\ntitle: GitHub Login\n---\n1. Open github.com\n")
	require.NoError(t, h.run("guide", "add", "websites/github.md"))
	assert.Contains(t, h.out.String(), "Saved websites/github.md (GitHub Login)")

	require.NoError(t, h.run("guide", "list"))
	assert.Equal(t, "applications/\nwebsites/\nworkflows/\n", h.out.String())

	require.NoError(t, h.run("guide", "list", "websites"))
	assert.Equal(t, "github.md\n", h.out.String())

	require.NoError(t, h.run("guide", "show", "websites/github.md"))
	assert.Contains(t, h.out.String(), "1. Open github.com")

	require.NoError(t, h.run("guide", "index"))
	assert.Equal(t, "websites/github.md\tGitHub Login\n", h.out.String())

	err := h.run("guide", "show", "websites/gitlab.md")
	assert.ErrorContains(t, err, "guide not found")
}

func TestGuideAddFromFile(t *testing.T) {
	h := newHarness(t, "sk-test")
	src := filepath.Join(t.TempDir(), "excel.md")
	require.NoError(t, os.WriteFile(src, []byte("# Excel Basics\n"), 0o644))

	require.NoError(t, h.run("guide", "add", "applications/excel.md", "--file", src))
	data, err := os.ReadFile(filepath.Join(h.guides, "applications", "excel.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Excel Basics\n", string(data))
}

func TestGuideAddRejectsEmpty(t *testing.T) {
	h := newHarness(t, "sk-test")
	assert.ErrorContains(t, h.run("guide", "add", "websites/x.md"), "empty")
}

func TestGuideSearch(t *testing.T) {
	h := newHarness(t, "sk-test",
		&ai.Response{Text: agent.NoGuideFound},
	)
	require.NoError(t, h.run("guide", "search", "tax", "forms"))
	assert.Equal(t, agent.NoGuideFound+"\n", h.out.String())
}

func TestRunJSON(t *testing.T) {
	h := newHarness(t, "sk-test",
		&ai.Response{Text: "Clicking", ToolCalls: []ai.ToolCall{{ID: "1", Name: "mouse_click", Arguments: `{"x":10,"y":20}`}}, Usage: ai.Usage{InputTokens: 100, OutputTokens: 10}},
		&ai.Response{Text: "Done.", Usage: ai.Usage{InputTokens: 150, OutputTokens: 5}},
	)
	require.NoError(t, h.run("run", "click", "the", "button", "--json"))

	var res struct {
		agent.AgentResult
		Usage telemetry.Summary `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &res))
	assert.Equal(t, 2, res.Usage.Calls)
	assert.Equal(t, 250, res.Usage.InputTokens)
	assert.Equal(t, 15, res.Usage.OutputTokens)
	assert.True(t, res.Success)
	assert.Equal(t, "Done.", res.FinalResponse)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, "Clicked left at (10, 20)", res.Steps[0].Result)
	assert.Equal(t, []string{"click 10 20 left double=false"}, h.fake.Calls())
}

func TestRunRequiresAPIKey(t *testing.T) {
	t.Setenv("AUTOMATE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	h := newHarness(t, "")
	err := h.run("run", "anything")
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"Hello"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	h := newHarness(t, "sk-test")
	h.app.newProvider = func(s *config.Settings) ai.Provider {
		s.Endpoint = srv.URL
		return openaiProvider(s)
	}
	require.NoError(t, h.run("ping"))
	assert.Contains(t, h.out.String(), "gpt-4o via "+srv.URL+": Hello")
}
