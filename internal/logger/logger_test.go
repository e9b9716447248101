package logger

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(WARN), WithColors(false))

	l.Info("hidden")
	l.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithColors(false)).
		WithPrefix("flashcard_service").
		WithFields(map[string]any{"profile_id": 3, "card_id": 9})

	l.Info("reviewed")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[flashcard_service]")
	assert.True(t, strings.HasSuffix(line, "reviewed card_id=9 profile_id=3"), line)
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(WithOutput(&buf), WithColors(false))
	_ = parent.WithField("request_id", "abc")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestContext(t *testing.T) {
	l := New().WithPrefix("req")
	ctx := NewContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestLogger_RequestAndProfileLead(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithColors(false)).
		WithFields(map[string]any{"status": 200, "method": "POST"}).
		WithProfile(12).
		WithRequest("req-1")

	l.Info("request completed")

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "request completed request_id=req-1 profile_id=12 method=POST status=200"), line)
}

func TestLogger_WithFieldReplacesKey(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithColors(false)).WithProfile(1).WithProfile(2)

	l.Info("switched")
	assert.Contains(t, buf.String(), "profile_id=2")
	assert.NotContains(t, buf.String(), "profile_id=1")
}

func TestLogger_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	New(WithOutput(&buf), WithColors(false)).
		WithFields(map[string]any{"chapter": "Knowing Our Numbers", "empty": ""}).
		Info("seeded")

	assert.Contains(t, buf.String(), `chapter="Knowing Our Numbers"`)
	assert.Contains(t, buf.String(), `empty=""`)
}

func TestLogger_DerivedLoggersShareWriter(t *testing.T) {
	var buf bytes.Buffer
	root := New(WithOutput(&buf), WithColors(false))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root.WithProfile(int64(i)).Info("tick")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "tick profile_id=")
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "UNKNOWN", Level(9).String())
}
