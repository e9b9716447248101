package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.WithOutput(io.Discard), logger.WithColors(false))
}

func TestLoggingProvider(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithLevel(logger.DEBUG))
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`hi`), Usage: Usage{InputTokens: 3, OutputTokens: 1}})
	p := WithLogging(mock, log)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text())
	assert.Contains(t, buf.String(), "[tutor]")
	assert.Contains(t, buf.String(), "input_tokens=3")

	_, err = p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "generate failed")
}
