package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the provider asks for JSON conforming to it and
	// the returned Content has already been validated.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System string

	// Messages is usually a single user turn carrying the learner context.
	Messages []Message

	// Schema, when non-nil, switches the provider to its native
	// structured output mode. Without it Content is the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "study-plan". It doubles as the cache key
	// for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output for one request.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which can
	// differ from ModelID when a router picks a fallback.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// GenerateInto runs req against p and decodes the JSON content into T.
func GenerateInto[T any](ctx context.Context, p Provider, req Request) (T, *Response, error) {
	var out T

	resp, err := p.Generate(ctx, req)
	if err != nil {
		return out, nil, err
	}

	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, resp, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode %T: %w", out, err),
		}
	}
	return out, resp, nil
}

// finish validates content against the request schema and assembles the
// provider-neutral Response.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
