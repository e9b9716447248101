package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultOllamaBaseURL is the OpenAI-compatible endpoint of a local Ollama.
	DefaultOllamaBaseURL = "http://localhost:11434/v1"
	defaultOllamaModel   = "llama3.2"
	defaultOpenAIModel   = "gpt-4o-mini"
)

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Local marks an Ollama server: no key is needed, structured replies use
	// plain JSON mode with the schema in the prompt, and Ping checks that the
	// model has been pulled.
	Local bool
}

// OpenAIProvider talks to OpenAI or to a local Ollama through its
// OpenAI-compatible API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	local  bool
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" && !cfg.Local {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		local:  cfg.Local,
	}, nil
}

// NewOllamaProvider returns an OpenAIProvider pointed at a local Ollama server.
func NewOllamaProvider(baseURL, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return NewOpenAIProvider(OpenAIConfig{APIKey: "ollama", Model: model, BaseURL: baseURL, Local: true})
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no choices in response")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	if err := checkStructured(req, content, stop); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

// chatRequest builds the completion request. OpenAI gets a strict JSON
// Schema response format; Ollama models only honour JSON mode, so the schema
// goes into the system prompt instead.
func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	system := req.System
	var format *openai.ChatCompletionResponseFormat

	if req.Schema != nil {
		if p.local {
			instruction, err := schemaInstruction(req.Schema)
			if err != nil {
				return openai.ChatCompletionRequest{}, err
			}
			system = strings.TrimSpace(system + "\n\n" + instruction)
			format = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
		} else {
			def, err := json.Marshal(req.Schema.Definition)
			if err != nil {
				return openai.ChatCompletionRequest{}, fmt.Errorf("marshal schema: %w", err)
			}
			format = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(def),
					Strict:      true,
				},
			}
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	return openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		ResponseFormat:      format,
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// Ping lists the server's models. Against Ollama it also fails when the
// configured model has not been pulled, since every chat would fail.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return mapOpenAIError(err)
	}
	if !p.local {
		return nil
	}
	for _, m := range list.Models {
		if ollamaModelMatches(m.ID, p.model) {
			return nil
		}
	}
	return &ErrProviderUnavailable{Err: fmt.Errorf("model %q is not pulled; run `ollama pull %s`", p.model, p.model)}
}

// ollamaModelMatches treats "llama3.2" and "llama3.2:latest" as the same model.
func ollamaModelMatches(id, want string) bool {
	if id == want {
		return true
	}
	return !strings.Contains(want, ":") && id == want+":latest"
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
