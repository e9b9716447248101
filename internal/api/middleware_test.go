package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/services"
)

func TestRecoveryMiddleware(t *testing.T) {
	h := loggingMiddleware(recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/anything", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), errors.ErrCodeInternal)
}

func TestLoggingMiddleware_KeepsRequestID(t *testing.T) {
	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestDecodeJSON(t *testing.T) {
	var input services.GenerateQuestionsInput
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.NoError(t, decodeJSON(req, &input, true))
	assert.Zero(t, input.Count)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := decodeJSON(req, &input, false)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"count": 21}`))
	err = decodeJSON(req, &input, false)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "validation failed for count: max=20", appErr.Message)
}
