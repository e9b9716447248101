package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository/memory"
	"github.com/vytor/ncertflash/internal/services"
	"github.com/vytor/ncertflash/internal/testutil/mocks"
)

func newFlashcardService(clock services.Clock) (services.FlashcardService, *memory.FlashcardRepository) {
	repo := memory.NewFlashcardRepository()
	return services.NewFlashcardService(repo, flashcard.Scheduler{}, clock), repo
}

func TestFlashcardService_CreateFlashcard(t *testing.T) {
	svc, _ := newFlashcardService(fixedClock())

	card, err := svc.CreateFlashcard(context.Background(), 1, services.CreateFlashcardInput{
		Front: "What is photosynthesis?", Back: "Plants making food from sunlight", Subject: "Science",
	})
	require.NoError(t, err)
	assert.NotZero(t, card.ID)
	assert.Equal(t, "Custom", card.Chapter)
	assert.Equal(t, models.DifficultyMedium, card.Difficulty)
	assert.Equal(t, flashcard.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, fixedNow, card.NextReview)

	next, err := svc.GetNextFlashcard(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, card.ID, next.ID)
}

func TestFlashcardService_CreateFlashcardValidation(t *testing.T) {
	svc, _ := newFlashcardService(fixedClock())
	ctx := context.Background()

	_, err := svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Back: "b", Subject: "s"})
	requireAppError(t, err, errors.ErrCodeValidation)
	_, err = svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b"})
	requireAppError(t, err, errors.ErrCodeValidation)
	_, err = svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b", Subject: "s", Difficulty: "brutal"})
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestFlashcardService_ReviewSequence(t *testing.T) {
	now := fixedNow
	svc, repo := newFlashcardService(func() time.Time { return now })
	ctx := context.Background()

	card, err := svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b", Subject: "Mathematics"})
	require.NoError(t, err)

	res, err := svc.ReviewFlashcard(ctx, card.ID, 1, flashcard.Good, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.IntervalDays)
	assert.Equal(t, 1, res.Flashcard.Streak)

	now = now.AddDate(0, 0, 1)
	res, err = svc.ReviewFlashcard(ctx, card.ID, 1, flashcard.Good, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, res.IntervalDays)

	now = now.AddDate(0, 0, 6)
	res, err = svc.ReviewFlashcard(ctx, card.ID, 1, flashcard.Again, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Flashcard.Streak)
	assert.Equal(t, 0, res.Quality)
	assert.Equal(t, now.AddDate(0, 0, 1), res.Flashcard.NextReview)
	assert.Equal(t, 3, res.Flashcard.TimesReviewed)

	history := repo.Reviews(card.ID)
	require.Len(t, history, 3)
	assert.Equal(t, "again", history[2].Rating)

	stored, err := repo.Get(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, res.Flashcard.NextReview, stored.NextReview)
}

func TestFlashcardService_ReviewIntervalMatchesSavedSchedule(t *testing.T) {
	repo := memory.NewFlashcardRepository()
	svc := services.NewFlashcardService(repo, flashcard.Scheduler{MaxIntervalDays: 4}, fixedClock())
	ctx := context.Background()

	card, err := svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b", Subject: "Science"})
	require.NoError(t, err)
	card.Streak = 5
	require.NoError(t, repo.UpdateSchedule(ctx, *card))

	res, err := svc.ReviewFlashcard(ctx, card.ID, 1, flashcard.Easy, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, res.IntervalDays)

	stored, err := repo.Get(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, res.IntervalDays), stored.NextReview)
	assert.Equal(t, res.Flashcard.EaseFactor, stored.EaseFactor)
}

func TestFlashcardService_ReviewOtherProfilesCard(t *testing.T) {
	svc, _ := newFlashcardService(fixedClock())
	ctx := context.Background()
	card, err := svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b", Subject: "s"})
	require.NoError(t, err)

	_, err = svc.ReviewFlashcard(ctx, card.ID, 2, flashcard.Good, 1)
	requireAppError(t, err, errors.ErrCodeNotFound)

	_, err = svc.ReviewFlashcard(ctx, card.ID, 1, flashcard.Rating(7), 1)
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestFlashcardService_HistoryFailureDoesNotFailReview(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	card := &models.Flashcard{ID: 4, ProfileID: 1, EaseFactor: 2.5, NextReview: fixedNow}
	repo.On("Get", mock.Anything, int64(4), int64(1)).Return(card, nil)
	repo.On("UpdateSchedule", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.ID == 4 && c.Streak == 1 && c.TimesReviewed == 1
	})).Return(nil)
	repo.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(stderrors.New("disk full"))

	svc := services.NewFlashcardService(repo, flashcard.Scheduler{}, fixedClock())
	res, err := svc.ReviewFlashcard(context.Background(), 4, 1, flashcard.Easy, 2)

	require.NoError(t, err)
	assert.Equal(t, 5, res.Quality)
	repo.AssertExpectations(t)
}

func TestFlashcardService_ListAndStats(t *testing.T) {
	svc, _ := newFlashcardService(fixedClock())
	ctx := context.Background()
	for _, subject := range []string{"Science", "Science", "Hindi"} {
		_, err := svc.CreateFlashcard(ctx, 1, services.CreateFlashcardInput{Front: "f", Back: "b", Subject: subject})
		require.NoError(t, err)
	}

	science, err := svc.ListFlashcards(ctx, 1, models.FilterDue, "Science")
	require.NoError(t, err)
	assert.Len(t, science, 2)

	none, err := svc.ListFlashcards(ctx, 2, "", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.ListFlashcards(ctx, 1, "overdue", "")
	requireAppError(t, err, errors.ErrCodeValidation)

	stats, err := svc.GetStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 3, stats.CardsNew)
	assert.Len(t, stats.Subjects, 2)
}
