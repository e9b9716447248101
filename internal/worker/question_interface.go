package worker

import (
	"context"

	"github.com/vytor/ncertflash/internal/tutor"
)

// QuestionServiceInterface generates and stores questions for a chapter.
// It lives here so the worker package does not import services.
type QuestionServiceInterface interface {
	GenerateQuestions(ctx context.Context, req tutor.QuestionRequest) (int, error)
}
