package tutor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuestionsJSON = `{"questions":[{"question":"1/2 + 1/4?","options":["3/4","2/6","1/8","1"],"correct_answer":0,"explanation":"common denominator","bloom_level":"apply","difficulty":"easy"}]}`

func newOllamaServer(t *testing.T, models []string, reply string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var lastRequest map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		data := make([]map[string]string, len(models))
		for i, m := range models {
			data[i] = map[string]string{"id": m, "object": "model"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastRequest = nil
		_ = json.Unmarshal(body, &lastRequest)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "llama3.2",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

func TestOllama_StructuredReplyUsesJSONMode(t *testing.T) {
	srv, last := newOllamaServer(t, nil, validQuestionsJSON)
	p, err := NewOllamaProvider(srv.URL+"/v1", "")
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:   "You write NCERT questions.",
		Messages: []Message{{Role: RoleUser, Content: "Fractions, 1 question"}},
		Schema:   QuestionSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, validQuestionsJSON, resp.Text())
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	format := (*last)["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
	messages := (*last)["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)["content"].(string)
	assert.Contains(t, system, "You write NCERT questions.")
	assert.Contains(t, system, "JSON Schema (mcq-questions)")
}

func TestOllama_InvalidStructuredReply(t *testing.T) {
	srv, _ := newOllamaServer(t, nil, `Sure! Here are some questions.`)
	p, err := NewOllamaProvider(srv.URL+"/v1", "llama3.2")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Schema: QuestionSchema})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOllama_PingRequiresPulledModel(t *testing.T) {
	srv, _ := newOllamaServer(t, []string{"llama3.2:latest", "mistral:7b"}, "")

	p, err := NewOllamaProvider(srv.URL+"/v1", "llama3.2")
	require.NoError(t, err)
	assert.NoError(t, p.Ping(context.Background()))

	p, err = NewOllamaProvider(srv.URL+"/v1", "qwen2.5:7b")
	require.NoError(t, err)
	err = p.Ping(context.Background())
	assert.True(t, IsUnavailable(err))
	assert.ErrorContains(t, err, "ollama pull qwen2.5:7b")
}

func TestOpenAI_StrictSchemaFormat(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, p.ModelID())

	req, err := p.chatRequest(Request{System: "sys", Schema: QuestionSchema, MaxTokens: 100})
	require.NoError(t, err)
	require.NotNil(t, req.ResponseFormat)
	require.NotNil(t, req.ResponseFormat.JSONSchema)
	assert.True(t, req.ResponseFormat.JSONSchema.Strict)
	assert.Equal(t, "mcq-questions", req.ResponseFormat.JSONSchema.Name)
	assert.Equal(t, "sys", req.Messages[0].Content)

	plain, err := p.chatRequest(Request{Messages: []Message{{Role: RoleAssistant, Content: "hi"}}})
	require.NoError(t, err)
	assert.Nil(t, plain.ResponseFormat)
	require.Len(t, plain.Messages, 1)
	assert.Equal(t, "assistant", plain.Messages[0].Role)

	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.ErrorContains(t, err, "API key is required")
}

func TestOllamaModelMatches(t *testing.T) {
	assert.True(t, ollamaModelMatches("llama3.2", "llama3.2"))
	assert.True(t, ollamaModelMatches("llama3.2:latest", "llama3.2"))
	assert.False(t, ollamaModelMatches("llama3.2:1b", "llama3.2"))
	assert.False(t, ollamaModelMatches("llama3.2:latest", "llama3.2:1b"))
}
