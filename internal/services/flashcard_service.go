package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

// CreateFlashcardInput is a user-authored card.
type CreateFlashcardInput struct {
	Front      string `json:"front" validate:"required"`
	Back       string `json:"back" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Chapter    string `json:"chapter"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// ReviewResult is a reviewed card together with the schedule computed for it.
type ReviewResult struct {
	Flashcard    models.Flashcard `json:"flashcard"`
	Quality      int              `json:"quality"`
	IntervalDays int              `json:"interval_days"`
}

// FlashcardOverview is the dashboard summary for one profile.
type FlashcardOverview struct {
	models.FlashcardStat
	Subjects []models.SubjectCount `json:"subjects"`
}

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	ListFlashcards(ctx context.Context, profileID int64, filter, subject string) ([]models.Flashcard, error)
	CreateFlashcard(ctx context.Context, profileID int64, input CreateFlashcardInput) (*models.Flashcard, error)
	GetNextFlashcard(ctx context.Context, profileID int64) (*models.Flashcard, error)
	ReviewFlashcard(ctx context.Context, flashcardID int64, profileID int64, rating flashcard.Rating, timeSeconds float64) (*ReviewResult, error)
	GetStats(ctx context.Context, profileID int64) (*FlashcardOverview, error)
}

type flashcardService struct {
	repo      repository.FlashcardRepository
	scheduler flashcard.Scheduler
	clock     Clock
}

// NewFlashcardService creates a new FlashcardService. A nil clock uses the
// wall clock.
func NewFlashcardService(repo repository.FlashcardRepository, scheduler flashcard.Scheduler, clock Clock) FlashcardService {
	return &flashcardService{repo: repo, scheduler: scheduler, clock: clock}
}

func (s *flashcardService) ListFlashcards(ctx context.Context, profileID int64, filter, subject string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: profile_id=%d filter=%s subject=%s", profileID, filter, subject)

	switch filter {
	case "", models.FilterAll, models.FilterDue, models.FilterNew:
	default:
		return nil, errors.NewValidationError("filter", "must be one of all, due, new")
	}

	cards, err := s.repo.List(ctx, models.FlashcardFilter{
		ProfileID: profileID,
		Filter:    filter,
		Subject:   strings.TrimSpace(subject),
		Now:       s.clock.now(),
	})
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return cards, nil
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, profileID int64, input CreateFlashcardInput) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	front := strings.TrimSpace(input.Front)
	back := strings.TrimSpace(input.Back)
	subject := strings.TrimSpace(input.Subject)
	switch {
	case front == "":
		return nil, errors.NewValidationError("front", "cannot be empty")
	case back == "":
		return nil, errors.NewValidationError("back", "cannot be empty")
	case subject == "":
		return nil, errors.NewValidationError("subject", "cannot be empty")
	}
	if input.Difficulty != "" && !models.ValidDifficulty(input.Difficulty) {
		return nil, errors.NewValidationError("difficulty", "must be one of easy, medium, hard")
	}

	now := s.clock.now()
	card := flashcard.NewCard(models.Flashcard{
		ProfileID:  profileID,
		Front:      front,
		Back:       back,
		Subject:    subject,
		Chapter:    strings.TrimSpace(input.Chapter),
		Difficulty: input.Difficulty,
		CreatedAt:  now,
	}, now)

	id, err := s.repo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to create flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id
	log.Info("flashcard created: id=%d profile_id=%d subject=%s", id, profileID, subject)
	return &card, nil
}

func (s *flashcardService) GetNextFlashcard(ctx context.Context, profileID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting next flashcard: profile_id=%d", profileID)

	card, err := s.repo.NextDue(ctx, profileID, s.clock.now())
	if err != nil {
		log.Error("failed to get next flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		log.Debug("no flashcards due for review")
	}
	return card, nil
}

func (s *flashcardService) ReviewFlashcard(ctx context.Context, flashcardID int64, profileID int64, rating flashcard.Rating, timeSeconds float64) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing flashcard: flashcard_id=%d, rating=%s", flashcardID, rating)

	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be one of again, hard, good, easy")
	}
	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	// Get flashcard and verify it belongs to profile
	card, err := s.repo.Get(ctx, flashcardID, profileID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", flashcardID)
	}

	now := s.clock.now()
	out := s.scheduler.Schedule(flashcard.Review{
		EaseFactor: card.EaseFactor,
		Streak:     card.Streak,
		Rating:     rating,
		At:         now,
	})
	updated := flashcard.ApplyOutcome(*card, out)

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", out.IntervalDays, updated.EaseFactor)

	err = s.repo.UpdateSchedule(ctx, updated)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NewNotFoundError("flashcard", flashcardID)
	}
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.repo.InsertReviewHistory(ctx, models.ReviewHistory{
		FlashcardID: card.ID,
		ProfileID:   profileID,
		Rating:      rating.String(),
		Quality:     out.Quality,
		TimeSeconds: timeSeconds,
		ReviewedAt:  now,
	}); err != nil {
		// the schedule is already saved
		log.Warn("failed to store review history: %v", err)
	}

	return &ReviewResult{
		Flashcard:    updated,
		Quality:      out.Quality,
		IntervalDays: out.IntervalDays,
	}, nil
}

func (s *flashcardService) GetStats(ctx context.Context, profileID int64) (*FlashcardOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard stats: profile_id=%d", profileID)

	now := s.clock.now()
	stats, err := s.repo.Stats(ctx, profileID, now)
	if err != nil {
		log.Error("failed to get flashcard stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	subjects, err := s.repo.SubjectCounts(ctx, profileID, now)
	if err != nil {
		log.Error("failed to get subject counts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subjects == nil {
		subjects = []models.SubjectCount{}
	}
	return &FlashcardOverview{FlashcardStat: *stats, Subjects: subjects}, nil
}
