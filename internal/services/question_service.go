package services

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/jobs"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/tutor"
	"github.com/vytor/ncertflash/internal/worker"
)

const maxGeneratedQuestions = 20

// GenerateQuestionsInput is a request for model-written questions.
type GenerateQuestionsInput struct {
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	BloomLevel string `json:"bloom_level"`
}

// QuestionService queues and runs question generation
type QuestionService interface {
	RequestGeneration(ctx context.Context, chapterID int64, input GenerateQuestionsInput) (*tutor.QuestionRequest, error)
	GenerateQuestions(ctx context.Context, req tutor.QuestionRequest) (int, error)
}

type questionService struct {
	curriculumRepo repository.CurriculumRepository
	questionRepo   repository.QuestionRepository
	generator      *tutor.QuestionGenerator
	queue          jobs.JobQueue
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	curriculumRepo repository.CurriculumRepository,
	questionRepo repository.QuestionRepository,
	generator *tutor.QuestionGenerator,
	queue jobs.JobQueue,
) QuestionService {
	return &questionService{
		curriculumRepo: curriculumRepo,
		questionRepo:   questionRepo,
		generator:      generator,
		queue:          queue,
	}
}

func (s *questionService) RequestGeneration(ctx context.Context, chapterID int64, input GenerateQuestionsInput) (*tutor.QuestionRequest, error) {
	log := logger.FromContext(ctx)

	count := input.Count
	if count == 0 {
		count = 5
	}
	if count < 1 || count > maxGeneratedQuestions {
		return nil, errors.NewValidationError("count", "must be between 1 and 20")
	}
	if input.Difficulty != "" && !models.ValidDifficulty(input.Difficulty) {
		return nil, errors.NewValidationError("difficulty", "must be one of easy, medium, hard")
	}
	bloom := strings.ToLower(strings.TrimSpace(input.BloomLevel))
	if bloom != "" && !slices.Contains(tutor.BloomLevels, bloom) {
		return nil, errors.NewValidationError("bloom_level", "must be one of "+strings.Join(tutor.BloomLevels, ", "))
	}

	chapter, err := s.curriculumRepo.GetChapter(ctx, chapterID)
	if err != nil {
		log.Error("failed to get chapter: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if chapter == nil {
		return nil, errors.NewNotFoundError("chapter", chapterID)
	}
	subject, err := s.curriculumRepo.GetSubject(ctx, chapter.SubjectID)
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("subject", chapter.SubjectID)
	}
	classLevel, err := s.classLevel(ctx, subject.ClassID)
	if err != nil {
		return nil, err
	}

	req := tutor.QuestionRequest{
		ChapterID:  chapter.ID,
		ClassLevel: classLevel,
		Subject:    subject.Name,
		Chapter:    chapter.Title,
		Difficulty: input.Difficulty,
		BloomLevel: bloom,
		Count:      count,
	}

	err = s.queue.EnqueueQuestionGeneration(req)
	if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
		log.Warn("question generation rejected: %v", err)
		return nil, errors.NewUnavailableError("question generation is busy, try again later", err)
	}
	if err != nil {
		log.Error("failed to enqueue question generation: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("question generation queued: chapter_id=%d count=%d", chapterID, count)
	return &req, nil
}

func (s *questionService) classLevel(ctx context.Context, classID int64) (int, error) {
	classes, err := s.curriculumRepo.ListClasses(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list classes: %v", err)
		return 0, errors.NewInternalError(err)
	}
	for _, c := range classes {
		if c.ID == classID {
			return c.Level, nil
		}
	}
	return 0, errors.NewNotFoundError("class", classID)
}

// GenerateQuestions runs a generation request and stores the result. It is
// called from the worker pool.
func (s *questionService) GenerateQuestions(ctx context.Context, req tutor.QuestionRequest) (int, error) {
	log := logger.FromContext(ctx)

	questions, err := s.generator.Generate(ctx, req)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, q := range questions {
		if _, err := s.questionRepo.Upsert(ctx, q); err != nil {
			log.Warn("failed to store generated question: %v", err)
			continue
		}
		stored++
	}
	if stored == 0 && len(questions) > 0 {
		return 0, stderrors.New("no generated question could be stored")
	}
	return stored, nil
}
