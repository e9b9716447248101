// Package tutor talks to hosted and local language models for the study
// chat and for generating practice questions.
package tutor

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every model backend.
type Provider interface {
	// Generate sends a prompt and returns the reply. When req.Schema is set
	// the reply Content is JSON that validates against it; otherwise it is
	// the plain text of the reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Pinger is implemented by providers that can cheaply check reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the reply must satisfy.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	StopReason string
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Text returns the reply as a string.
func (r *Response) Text() string {
	return string(r.Content)
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a short alias to a provider model id. Unknown names are
// returned unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
