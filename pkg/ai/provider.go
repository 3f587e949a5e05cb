// ABOUTME: Provider interface implemented by chat-completion backends
// ABOUTME: Defines the terminal remote errors surfaced to the agent loop

package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoChoices is returned when a completion response carries no choices.
var ErrNoChoices = errors.New("no response from API")

// Provider is the interface all chat-completion backends implement.
// Complete issues exactly one request; it never retries.
type Provider interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// APIError is a non-success HTTP status returned by the remote endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}
