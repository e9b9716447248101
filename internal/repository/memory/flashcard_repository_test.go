package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/repository/memory"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newCard(profileID int64, subject string, next time.Time) models.Flashcard {
	c := flashcard.NewCard(models.Flashcard{ProfileID: profileID, Front: "q", Back: "a", Subject: subject}, next)
	return c
}

func TestFlashcardRepository_InsertGetScoped(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()

	id, err := repo.Insert(ctx, newCard(1, "Science", now))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	card, err := repo.Get(ctx, id, 1)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "Custom", card.Chapter)

	other, err := repo.Get(ctx, id, 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestFlashcardRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()
	id, _ := repo.Insert(ctx, newCard(1, "Science", now))

	card, _ := repo.Get(ctx, id, 1)
	card.EaseFactor = 9

	again, _ := repo.Get(ctx, id, 1)
	assert.Equal(t, flashcard.DefaultEaseFactor, again.EaseFactor)
}

func TestFlashcardRepository_FiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()

	_, _ = repo.Insert(ctx, newCard(1, "Science", now.Add(-time.Hour)))
	late, _ := repo.Insert(ctx, newCard(1, "Mathematics", now.Add(time.Hour)))
	early, _ := repo.Insert(ctx, newCard(1, "Mathematics", now.Add(-2*time.Hour)))
	_, _ = repo.Insert(ctx, newCard(2, "Science", now.Add(-time.Hour)))

	all, err := repo.List(ctx, models.FlashcardFilter{ProfileID: 1})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, early, all[0].ID)
	assert.Equal(t, late, all[2].ID)

	due, err := repo.List(ctx, models.FlashcardFilter{ProfileID: 1, Filter: models.FilterDue, Now: now})
	require.NoError(t, err)
	assert.Len(t, due, 2)

	n, err := repo.Count(ctx, models.FlashcardFilter{ProfileID: 1, Subject: "Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	next, err := repo.NextDue(ctx, 1, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, early, next.ID)

	page, err := repo.List(ctx, models.FlashcardFilter{ProfileID: 1, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)

	past, err := repo.List(ctx, models.FlashcardFilter{ProfileID: 1, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestFlashcardRepository_ReviewFlow(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()
	id, _ := repo.Insert(ctx, newCard(1, "Science", now))

	card, _ := repo.Get(ctx, id, 1)
	updated := flashcard.Scheduler{}.ApplyReview(*card, flashcard.Good, now)
	require.NoError(t, repo.UpdateSchedule(ctx, updated))
	require.NoError(t, repo.InsertReviewHistory(ctx, models.ReviewHistory{FlashcardID: id, ProfileID: 1, Rating: "good", Quality: 3, ReviewedAt: now}))

	stored, _ := repo.Get(ctx, id, 1)
	assert.Equal(t, 1, stored.Streak)
	assert.Equal(t, now.AddDate(0, 0, 1), stored.NextReview)
	assert.Len(t, repo.Reviews(id), 1)

	fresh, err := repo.Count(ctx, models.FlashcardFilter{ProfileID: 1, Filter: models.FilterNew})
	require.NoError(t, err)
	assert.Zero(t, fresh)

	updated.ProfileID = 2
	assert.ErrorIs(t, repo.UpdateSchedule(ctx, updated), repository.ErrNotFound)
	assert.ErrorIs(t, repo.InsertReviewHistory(ctx, models.ReviewHistory{FlashcardID: 99}), repository.ErrNotFound)
}

func TestFlashcardRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()

	_, _ = repo.Insert(ctx, newCard(1, "Science", now.Add(-time.Hour)))
	mastered := newCard(1, "Mathematics", now.AddDate(0, 0, 5))
	mastered.Streak = 3
	mastered.EaseFactor = 2.7
	mastered.TimesReviewed = 3
	reviewed := now.Add(-time.Hour)
	mastered.LastReviewed = &reviewed
	_, _ = repo.Insert(ctx, mastered)

	stats, err := repo.Stats(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCards)
	assert.Equal(t, 1, stats.CardsDue)
	assert.Equal(t, 1, stats.CardsNew)
	assert.Equal(t, 1, stats.CardsMastered)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.InDelta(t, 2.6, stats.AvgEaseFactor, 1e-9)

	subjects, err := repo.SubjectCounts(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, []models.SubjectCount{
		{Subject: "Mathematics", Cards: 1, Due: 0},
		{Subject: "Science", Cards: 1, Due: 1},
	}, subjects)

	empty, err := repo.Stats(ctx, 7, now)
	require.NoError(t, err)
	assert.Zero(t, empty.AvgEaseFactor)
}

func TestFlashcardRepository_ConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFlashcardRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Insert(ctx, newCard(1, "Science", now))
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx, models.FlashcardFilter{ProfileID: 1})
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
