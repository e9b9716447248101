package worker

import (
	"context"
	"fmt"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/tutor"
)

// GenerateQuestionsJob asks the model for new questions on one chapter and
// stores them.
type GenerateQuestionsJob struct {
	QuestionService QuestionServiceInterface
	Request         tutor.QuestionRequest
}

func (j *GenerateQuestionsJob) Name() string { return "generate_questions" }

func (j *GenerateQuestionsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"chapter_id": j.Request.ChapterID,
		"count":      j.Request.Count,
	})
	log.Info("generating questions")

	stored, err := j.QuestionService.GenerateQuestions(ctx, j.Request)
	if err != nil {
		return fmt.Errorf("generate questions for chapter %d: %w", j.Request.ChapterID, err)
	}
	log.Info("stored %d generated questions", stored)
	return nil
}
