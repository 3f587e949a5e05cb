// ABOUTME: OpenAI-compatible Chat Completions provider (OpenAI, Azure-style gateways, Ollama, vLLM)
// ABOUTME: Implements ai.Provider with one non-streaming request per call and a connection probe

package openai

import (
	"context"
	"strings"
	"time"

	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
	"github.com/mauromedda/automate-go/pkg/ai/internal/httputil"
)

const (
	// DefaultEndpoint is used when no endpoint is configured.
	DefaultEndpoint    = "https://api.openai.com/v1"
	chatCompletionPath = "/chat/completions"
)

// Provider implements the OpenAI Chat Completions API.
type Provider struct {
	client *httputil.Client
}

// Options configures a Provider.
type Options struct {
	Endpoint string        // base URL; "/chat/completions" is appended
	APIKey   string        // sent as a bearer token
	Timeout  time.Duration // per-call timeout; zero selects the client default
}

// New creates an OpenAI-compatible provider.
func New(opts Options) *Provider {
	endpoint := opts.Endpoint
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	headers := map[string]string{"Authorization": "Bearer " + opts.APIKey}
	return &Provider{client: httputil.NewClient(endpoint, headers, opts.Timeout)}
}

// Complete sends one chat-completion request and returns the first choice.
// Transport failures and non-2xx statuses are returned as errors; nothing is retried.
func (p *Provider) Complete(ctx context.Context, req *ai.Request) (*ai.Response, error) {
	pilog.Debug("openai: model=%s messages=%d tools=%d", req.Model, len(req.Messages), len(req.Tools))

	var decoded chatResponse
	if err := p.client.PostJSON(ctx, chatCompletionPath, buildRequestBody(req), &decoded); err != nil {
		return nil, err
	}
	return convertResponse(&decoded)
}

// Ping verifies the endpoint, credential, and model with a minimal request.
// It returns the model's reply, or "Connected" when the reply is empty.
func (p *Provider) Ping(ctx context.Context, model string) (string, error) {
	resp, err := p.Complete(ctx, &ai.Request{
		Model:       model,
		Messages:    []ai.Message{ai.NewTextMessage(ai.RoleUser, "Say 'Hello' in one word.")},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "Connected", nil
	}
	return resp.Text, nil
}
