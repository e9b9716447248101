package services

import (
	"context"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/vark"
)

// AssessmentResult is a scored questionnaire and the stored learning style.
type AssessmentResult struct {
	vark.Result
	LearningStyle models.LearningStyle `json:"learning_style"`
}

// AssessmentService handles the VARK learning-style assessment
type AssessmentService interface {
	Questions() []vark.Question
	SubmitAssessment(ctx context.Context, profileID int64, answers []vark.Style) (*AssessmentResult, error)
	GetLearningStyle(ctx context.Context, profileID int64) (*models.LearningStyle, error)
}

type assessmentService struct {
	styleRepo repository.LearningStyleRepository
	clock     Clock
}

// NewAssessmentService creates a new AssessmentService
func NewAssessmentService(styleRepo repository.LearningStyleRepository, clock Clock) AssessmentService {
	return &assessmentService{styleRepo: styleRepo, clock: clock}
}

func (s *assessmentService) Questions() []vark.Question {
	return vark.Questionnaire
}

func (s *assessmentService) SubmitAssessment(ctx context.Context, profileID int64, answers []vark.Style) (*AssessmentResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("scoring assessment: profile_id=%d answers=%d", profileID, len(answers))

	result, err := vark.Score(answers)
	if err != nil {
		return nil, errors.NewValidationError("answers", err.Error())
	}

	style := models.LearningStyle{
		ProfileID:     profileID,
		Visual:        result.Counts.Visual,
		Auditory:      result.Counts.Auditory,
		Reading:       result.Counts.Reading,
		Kinesthetic:   result.Counts.Kinesthetic,
		DominantStyle: result.Primary,
		AssessedAt:    s.clock.now(),
	}
	if err := s.styleRepo.Upsert(ctx, style); err != nil {
		log.Error("failed to save learning style: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("learning style assessed: profile_id=%d primary=%s", profileID, result.Primary)
	return &AssessmentResult{Result: result, LearningStyle: style}, nil
}

func (s *assessmentService) GetLearningStyle(ctx context.Context, profileID int64) (*models.LearningStyle, error) {
	log := logger.FromContext(ctx)

	style, err := s.styleRepo.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to get learning style: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if style == nil {
		return nil, errors.NewNotFoundError("learning style for profile", profileID)
	}
	return style, nil
}
