package services

import (
	"context"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

// CurriculumService handles browsing classes, subjects and chapters
type CurriculumService interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListSubjects(ctx context.Context, classLevel int) ([]models.Subject, error)
	ListChapters(ctx context.Context, subjectID int64) ([]models.Chapter, error)
	GetChapter(ctx context.Context, id int64) (*models.Chapter, error)
}

type curriculumService struct {
	repo repository.CurriculumRepository
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(repo repository.CurriculumRepository) CurriculumService {
	return &curriculumService{repo: repo}
}

func (s *curriculumService) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list classes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

func (s *curriculumService) ListSubjects(ctx context.Context, classLevel int) ([]models.Subject, error) {
	if classLevel < 1 || classLevel > 12 {
		return nil, errors.NewValidationError("class", "must be between 1 and 12")
	}
	subjects, err := s.repo.ListSubjects(ctx, classLevel)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list subjects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

func (s *curriculumService) ListChapters(ctx context.Context, subjectID int64) ([]models.Chapter, error) {
	log := logger.FromContext(ctx)

	subject, err := s.repo.GetSubject(ctx, subjectID)
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("subject", subjectID)
	}

	chapters, err := s.repo.ListChapters(ctx, subjectID)
	if err != nil {
		log.Error("failed to list chapters: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	return chapters, nil
}

func (s *curriculumService) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	chapter, err := s.repo.GetChapter(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get chapter: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if chapter == nil {
		return nil, errors.NewNotFoundError("chapter", id)
	}
	return chapter, nil
}
