package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/ncertflash/internal/models"
)

// Bloom's taxonomy levels accepted for generated questions.
var BloomLevels = []string{"remember", "understand", "apply", "analyze", "evaluate", "create"}

// QuestionSchema is the structure requested from the model when generating
// multiple-choice questions.
var QuestionSchema = &Schema{
	Name:        "mcq-questions",
	Description: "A list of multiple-choice questions with four options each",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"question", "options", "correct_answer", "explanation", "bloom_level", "difficulty"},
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 4,
							"maxItems": 4,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"correct_answer": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
						"explanation":    map[string]any{"type": "string"},
						"bloom_level":    map[string]any{"type": "string", "enum": []any{"remember", "understand", "apply", "analyze", "evaluate", "create"}},
						"difficulty":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
					},
				},
			},
		},
	},
}

// QuestionRequest asks for Count questions on one chapter.
type QuestionRequest struct {
	ChapterID  int64  `json:"chapter_id"`
	ClassLevel int    `json:"class_level"`
	Subject    string `json:"subject"`
	Chapter    string `json:"chapter"`
	Difficulty string `json:"difficulty"`
	BloomLevel string `json:"bloom_level"`
	Count      int    `json:"count"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	BloomLevel    string   `json:"bloom_level"`
	Difficulty    string   `json:"difficulty"`
}

var xpByDifficulty = map[string]int{
	models.DifficultyEasy:   10,
	models.DifficultyMedium: 20,
	models.DifficultyHard:   30,
}

// QuestionGenerator produces quiz questions with a Provider.
type QuestionGenerator struct {
	provider Provider
}

func NewQuestionGenerator(p Provider) *QuestionGenerator {
	return &QuestionGenerator{provider: p}
}

func (g *QuestionGenerator) Generate(ctx context.Context, req QuestionRequest) ([]models.Question, error) {
	if req.Count <= 0 {
		req.Count = 5
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}

	resp, err := g.provider.Generate(ctx, Request{
		System:      "You write accurate multiple-choice questions for NCERT textbooks. Reply with JSON only.",
		Messages:    []Message{{Role: RoleUser, Content: questionPrompt(req)}},
		Schema:      QuestionSchema,
		MaxTokens:   2048,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	questions := make([]models.Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		questions = append(questions, models.Question{
			ChapterID:     req.ChapterID,
			Question:      strings.TrimSpace(q.Question),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			BloomLevel:    q.BloomLevel,
			Difficulty:    q.Difficulty,
			XPReward:      xpByDifficulty[q.Difficulty],
			Source:        "generated",
		})
	}
	return questions, nil
}

func questionPrompt(req QuestionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s multiple-choice questions for Class %d %s, chapter %q.\n",
		req.Count, req.Difficulty, req.ClassLevel, req.Subject, req.Chapter)
	if req.BloomLevel != "" {
		fmt.Fprintf(&b, "Target Bloom's taxonomy level: %s.\n", req.BloomLevel)
	}
	b.WriteString("Each question has exactly four options, one correct answer given by its zero-based index, and a short explanation.")
	return b.String()
}
