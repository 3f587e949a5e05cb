// ABOUTME: Core AI SDK types: Message, Content, ToolCall, Tool, Request, Response
// ABOUTME: Shared across providers; wire-format agnostic

package ai

import "encoding/json"

// Role represents a message role in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ContentType identifies the kind of content part.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
)

// DetailHigh asks the provider for full-resolution image analysis.
const DetailHigh = "high"

// Content is one part of a multimodal message.
type Content struct {
	Type     ContentType `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL string      `json:"image_url,omitempty"` // data URI or remote URL
	Detail   string      `json:"detail,omitempty"`    // image detail hint
}

// TextPart creates a text content part.
func TextPart(text string) Content {
	return Content{Type: ContentText, Text: text}
}

// ImagePart creates an image content part referencing url with the given detail.
func ImagePart(url, detail string) Content {
	return Content{Type: ContentImage, ImageURL: url, Detail: detail}
}

// ToolCall is an invocation request emitted by the model.
// Arguments is the raw string-encoded JSON payload, kept verbatim.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message represents a conversation message.
// A message is multimodal when Parts is non-nil; otherwise Text is its content.
type Message struct {
	Role       Role       `json:"role"`
	Text       string     `json:"text,omitempty"`
	Parts      []Content  `json:"parts,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool role only
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant role only
}

// NewTextMessage creates a plain-text message.
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Text: text}
}

// NewPartsMessage creates a multimodal message from ordered parts.
func NewPartsMessage(role Role, parts ...Content) Message {
	return Message{Role: role, Parts: parts}
}

// NewToolResultMessage creates a tool-role message correlated to callID.
func NewToolResultMessage(callID, text string) Message {
	return Message{Role: RoleTool, Text: text, ToolCallID: callID}
}

// IsMultimodal reports whether the message carries ordered parts.
func (m Message) IsMultimodal() bool {
	return m.Parts != nil
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Tool defines a tool the model can invoke.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

// Request is a single chat-completion call.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Response is the first choice of a chat-completion call.
// Text and ToolCalls may both be present; Text is commentary in that case.
type Response struct {
	Text         string     `json:"text"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"`
	Usage        Usage      `json:"usage"`
	Model        string     `json:"model,omitempty"`
}
