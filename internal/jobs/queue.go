package jobs

import "github.com/vytor/ncertflash/internal/tutor"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueQuestionGeneration(req tutor.QuestionRequest) error
}
