// ABOUTME: Message format conversion between internal types and OpenAI API format
// ABOUTME: Handles text/multimodal content, tool definitions, and tool-call correlation

package openai

import (
	"encoding/json"

	"github.com/mauromedda/automate-go/pkg/ai"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []toolDef     `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role       string        `json:"role"`
	Content    any           `json:"content"` // string, []contentPart, or nil
	ToolCalls  []toolCallReq `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type toolCallReq struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Function toolCallFuncReq `json:"function"`
}

type toolCallFuncReq struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function toolFuncDef `json:"function"`
}

type toolFuncDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatResponse struct {
	Model   string     `json:"model"`
	Choices []choice   `json:"choices"`
	Usage   *chatUsage `json:"usage,omitempty"`
}

type choice struct {
	Message      responseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type responseMessage struct {
	Role      string        `json:"role"`
	Content   *string       `json:"content"`
	ToolCalls []toolCallReq `json:"tool_calls,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func buildRequestBody(req *ai.Request) chatRequest {
	body := chatRequest{
		Model:       req.Model,
		Messages:    convertMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	if len(req.Tools) > 0 {
		body.Tools = convertTools(req.Tools)
		body.ToolChoice = "auto"
	}

	return body
}

func convertMessages(msgs []ai.Message) []chatMessage {
	out := make([]chatMessage, 0, len(msgs))

	for _, m := range msgs {
		msg := chatMessage{
			Role:       string(m.Role),
			ToolCallID: m.ToolCallID,
		}

		switch {
		case m.IsMultimodal():
			msg.Content = convertParts(m.Parts)
		case m.Role == ai.RoleAssistant && len(m.ToolCalls) > 0 && m.Text == "":
			msg.Content = nil
		default:
			msg.Content = m.Text
		}

		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, toolCallReq{
				ID:   tc.ID,
				Type: "function",
				Function: toolCallFuncReq{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		out = append(out, msg)
	}

	return out
}

func convertParts(parts []ai.Content) []contentPart {
	out := make([]contentPart, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case ai.ContentText:
			out = append(out, contentPart{Type: "text", Text: p.Text})
		case ai.ContentImage:
			out = append(out, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: p.ImageURL, Detail: p.Detail},
			})
		}
	}
	return out
}

func convertTools(tools []ai.Tool) []toolDef {
	defs := make([]toolDef, len(tools))
	for i, t := range tools {
		params := t.Parameters
		if len(params) == 0 {
			params = json.RawMessage(`{"type":"object","properties":{}}`)
		}
		defs[i] = toolDef{
			Type: "function",
			Function: toolFuncDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  params,
			},
		}
	}
	return defs
}

// convertResponse maps the first choice onto an ai.Response.
func convertResponse(resp *chatResponse) (*ai.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, ai.ErrNoChoices
	}

	first := resp.Choices[0]
	out := &ai.Response{
		FinishReason: first.FinishReason,
		Model:        resp.Model,
	}
	if first.Message.Content != nil {
		out.Text = *first.Message.Content
	}

	// A present-but-empty tool_calls array decodes to an empty non-nil slice
	// and is treated the same as an absent one.
	for _, tc := range first.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	if resp.Usage != nil {
		out.Usage = ai.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		}
	}

	return out, nil
}
