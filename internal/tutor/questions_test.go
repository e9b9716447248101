package tutor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/vark"
)

func TestQuestionGenerator_Generate(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"questions":[
		{"question":" What is 3/6 in simplest form? ","options":["1/2","1/3","2/3","3/4"],"correct_answer":0,"explanation":"divide by 3","bloom_level":"apply","difficulty":"medium"},
		{"question":"Which is larger?","options":["1/2","1/3","1/4","1/5"],"correct_answer":0,"explanation":"smaller denominator","bloom_level":"understand","difficulty":"hard"}
	]}`)})
	gen := NewQuestionGenerator(mock)

	qs, err := gen.Generate(context.Background(), QuestionRequest{
		ChapterID: 7, ClassLevel: 6, Subject: "Mathematics", Chapter: "Fractions", Count: 2,
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, int64(7), qs[0].ChapterID)
	assert.Equal(t, "What is 3/6 in simplest form?", qs[0].Question)
	assert.Equal(t, 20, qs[0].XPReward)
	assert.Equal(t, 30, qs[1].XPReward)
	assert.Equal(t, "generated", qs[1].Source)

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Same(t, QuestionSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, `"Fractions"`)
	assert.Contains(t, call.Messages[0].Content, models.DifficultyMedium)
}

func TestQuestionGenerator_InvalidResponse(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	_, err := NewQuestionGenerator(mock).Generate(context.Background(), QuestionRequest{Chapter: "Fractions"})

	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestQuestionGenerator_Unavailable(t *testing.T) {
	_, err := NewQuestionGenerator(NewMockProvider()).Generate(context.Background(), QuestionRequest{})
	assert.True(t, IsUnavailable(err))
}

func TestSystemPrompt(t *testing.T) {
	p := SystemPrompt(ChatContext{Style: vark.Kinesthetic, ClassLevel: 8, Subject: "Science", Topic: "Light"})
	assert.Contains(t, p, "Class 8 Science")
	assert.Contains(t, p, `"Light"`)
	assert.Contains(t, p, "hands-on")

	defaults := SystemPrompt(ChatContext{Style: vark.Visual})
	assert.Contains(t, defaults, "Class 6 General")
	assert.Contains(t, defaults, "General Knowledge")
}

func TestNewProvider_Questions(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	p, err = NewProvider(context.Background(), Config{Provider: "ollama", Retry: DefaultRetryConfig()}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "openai"}, testLogger())
	assert.Error(t, err, "openai without key")

	_, err = NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, testLogger())
	assert.Error(t, err)
}
