package jobs

import (
	"github.com/vytor/ncertflash/internal/tutor"
	"github.com/vytor/ncertflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	questionPool    *worker.Pool
	questionService worker.QuestionServiceInterface
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(questionPool *worker.Pool) *WorkerQueue {
	return &WorkerQueue{questionPool: questionPool}
}

// SetQuestionService wires the service that runs generation jobs. The
// service itself enqueues through this queue, so it is set after both exist.
func (q *WorkerQueue) SetQuestionService(svc worker.QuestionServiceInterface) {
	q.questionService = svc
}

func (q *WorkerQueue) EnqueueQuestionGeneration(req tutor.QuestionRequest) error {
	return q.questionPool.Submit(&worker.GenerateQuestionsJob{
		QuestionService: q.questionService,
		Request:         req,
	})
}
