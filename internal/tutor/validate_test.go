package tutor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResponse(t *testing.T) {
	valid := json.RawMessage(`{"questions":[{"question":"1/2 + 1/4?","options":["3/4","2/6","1/8","1"],"correct_answer":0,"explanation":"common denominator","bloom_level":"apply","difficulty":"easy"}]}`)
	assert.NoError(t, validateResponse(QuestionSchema, valid))
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not json`)))
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `here are your questions`},
		{"missing questions", `{}`},
		{"three options", `{"questions":[{"question":"q","options":["a","b","c"],"correct_answer":0,"explanation":"","bloom_level":"apply","difficulty":"easy"}]}`},
		{"answer out of range", `{"questions":[{"question":"q","options":["a","b","c","d"],"correct_answer":4,"explanation":"","bloom_level":"apply","difficulty":"easy"}]}`},
		{"unknown bloom level", `{"questions":[{"question":"q","options":["a","b","c","d"],"correct_answer":1,"explanation":"","bloom_level":"memorize","difficulty":"easy"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(QuestionSchema, json.RawMessage(tt.raw))
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}
