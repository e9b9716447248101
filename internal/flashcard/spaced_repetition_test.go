package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/models"
)

var reviewTime = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestRating_Quality(t *testing.T) {
	tests := []struct {
		rating  flashcard.Rating
		quality int
	}{
		{flashcard.Again, 0},
		{flashcard.Hard, 1},
		{flashcard.Good, 3},
		{flashcard.Easy, 5},
	}

	for _, tt := range tests {
		t.Run(tt.rating.String(), func(t *testing.T) {
			assert.Equal(t, tt.quality, tt.rating.Quality())
			// same rating, same quality
			assert.Equal(t, tt.rating.Quality(), tt.rating.Quality())
		})
	}
}

func TestParseRating(t *testing.T) {
	r, err := flashcard.ParseRating(" Good ")
	require.NoError(t, err)
	assert.Equal(t, flashcard.Good, r)

	_, err = flashcard.ParseRating("perfect")
	assert.Error(t, err)
}

func TestRating_TextRoundTrip(t *testing.T) {
	var r flashcard.Rating
	require.NoError(t, r.UnmarshalText([]byte("easy")))
	assert.Equal(t, flashcard.Easy, r)

	b, err := flashcard.Hard.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hard", string(b))

	_, err = flashcard.Rating(9).MarshalText()
	assert.Error(t, err)
}

func TestNextEaseFactor(t *testing.T) {
	assert.InDelta(t, 2.6, flashcard.NextEaseFactor(2.5, 5), 1e-9)
	assert.InDelta(t, 2.36, flashcard.NextEaseFactor(2.5, 3), 1e-9)
	assert.InDelta(t, 1.96, flashcard.NextEaseFactor(2.5, 1), 1e-9)
	assert.InDelta(t, 1.7, flashcard.NextEaseFactor(2.5, 0), 1e-9)
	assert.Equal(t, flashcard.MinEaseFactor, flashcard.NextEaseFactor(1.3, 0))
}

func TestSchedule_ScenarioA_FirstSuccess(t *testing.T) {
	out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: 0, Rating: flashcard.Good, At: reviewTime})

	assert.Equal(t, 3, out.Quality)
	assert.Equal(t, 1, out.Streak)
	assert.Equal(t, 1, out.IntervalDays)
	assert.Equal(t, reviewTime.AddDate(0, 0, 1), out.NextReview)
	assert.Equal(t, reviewTime, out.LastReviewed)
}

func TestSchedule_ScenarioB_SecondSuccess(t *testing.T) {
	out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: 1, Rating: flashcard.Good, At: reviewTime})

	assert.Equal(t, 2, out.Streak)
	assert.Equal(t, 6, out.IntervalDays)
}

func TestSchedule_ScenarioC_Easy(t *testing.T) {
	out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: 2, Rating: flashcard.Easy, At: reviewTime})

	assert.Equal(t, 5, out.Quality)
	assert.InDelta(t, 2.6, out.EaseFactor, 1e-9)
	assert.Equal(t, 3, out.Streak)
	assert.Equal(t, 8, out.IntervalDays)
	assert.Equal(t, reviewTime.AddDate(0, 0, 8), out.NextReview)
}

func TestSchedule_ScenarioD_AgainAtFloor(t *testing.T) {
	out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 1.3, Streak: 5, Rating: flashcard.Again, At: reviewTime})

	assert.Equal(t, 0, out.Quality)
	assert.Equal(t, 1.3, out.EaseFactor)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 1, out.IntervalDays)
}

func TestSchedule_FailedRatingsResetStreak(t *testing.T) {
	for _, rating := range []flashcard.Rating{flashcard.Again, flashcard.Hard} {
		for _, streak := range []int{0, 1, 2, 7, 40} {
			out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: streak, Rating: rating, At: reviewTime})
			assert.Equal(t, 0, out.Streak, "rating=%s streak=%d", rating, streak)
			assert.Equal(t, 1, out.IntervalDays, "rating=%s streak=%d", rating, streak)
		}
	}
}

func TestSchedule_PassingRatingsIncrementStreak(t *testing.T) {
	for _, rating := range []flashcard.Rating{flashcard.Good, flashcard.Easy} {
		for _, streak := range []int{0, 1, 2, 7, 40} {
			out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: streak, Rating: rating, At: reviewTime})
			assert.Equal(t, streak+1, out.Streak, "rating=%s streak=%d", rating, streak)
		}
	}
}

func TestSchedule_EarlyIntervalsIgnoreEase(t *testing.T) {
	for _, ef := range []float64{1.3, 1.8, 2.5, 3.4} {
		first := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: ef, Streak: 0, Rating: flashcard.Easy, At: reviewTime})
		second := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: ef, Streak: 1, Rating: flashcard.Good, At: reviewTime})
		assert.Equal(t, 1, first.IntervalDays, "ef=%v", ef)
		assert.Equal(t, 6, second.IntervalDays, "ef=%v", ef)
	}
}

func TestSchedule_NextReviewNeverBeforeReview(t *testing.T) {
	for _, rating := range []flashcard.Rating{flashcard.Again, flashcard.Hard, flashcard.Good, flashcard.Easy} {
		out := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 2.5, Streak: 3, Rating: rating, At: reviewTime})
		assert.False(t, out.NextReview.Before(reviewTime))
	}
}

func TestSchedule_MaxIntervalCap(t *testing.T) {
	s := flashcard.Scheduler{MaxIntervalDays: 30}
	out := s.Schedule(flashcard.Review{EaseFactor: 3.0, Streak: 20, Rating: flashcard.Easy, At: reviewTime})
	assert.Equal(t, 30, out.IntervalDays)

	uncapped := flashcard.Scheduler{}.Schedule(flashcard.Review{EaseFactor: 3.0, Streak: 20, Rating: flashcard.Easy, At: reviewTime})
	assert.Equal(t, 65, uncapped.IntervalDays) // round(21 * 3.1)
}

func TestApplyReview_RepeatedAgainKeepsFloor(t *testing.T) {
	card := models.Flashcard{EaseFactor: 2.5, Streak: 4, NextReview: reviewTime}
	s := flashcard.Scheduler{}

	for i := 0; i < 10; i++ {
		card = s.ApplyReview(card, flashcard.Again, reviewTime)
		assert.GreaterOrEqual(t, card.EaseFactor, flashcard.MinEaseFactor)
		assert.Equal(t, 0, card.Streak)
	}
	assert.Equal(t, 10, card.TimesReviewed)
}

func TestApplyReview_SetsTimestamps(t *testing.T) {
	card := models.Flashcard{ID: 7, EaseFactor: 2.5, NextReview: reviewTime}

	updated := flashcard.Scheduler{}.ApplyReview(card, flashcard.Good, reviewTime)

	require.NotNil(t, updated.LastReviewed)
	assert.Equal(t, reviewTime, *updated.LastReviewed)
	assert.Equal(t, reviewTime.AddDate(0, 0, 1), updated.NextReview)
	assert.Equal(t, int64(7), updated.ID)
	assert.Nil(t, card.LastReviewed, "input card must not be mutated")
}

func TestIsDue(t *testing.T) {
	card := models.Flashcard{NextReview: reviewTime}
	assert.True(t, flashcard.IsDue(card, reviewTime))
	assert.True(t, flashcard.IsDue(card, reviewTime.Add(time.Minute)))
	assert.False(t, flashcard.IsDue(card, reviewTime.Add(-time.Minute)))
}

func TestNewCard_Defaults(t *testing.T) {
	card := flashcard.NewCard(models.Flashcard{Front: "f", Back: "b", Subject: "Science", Streak: 3}, reviewTime)

	assert.Equal(t, flashcard.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.Streak)
	assert.Equal(t, "Custom", card.Chapter)
	assert.Equal(t, models.DifficultyMedium, card.Difficulty)
	assert.Equal(t, reviewTime, card.NextReview)
	assert.Nil(t, card.LastReviewed)
}

func TestApplyOutcome_MatchesSchedule(t *testing.T) {
	card := models.Flashcard{EaseFactor: 2.5, Streak: 2, TimesReviewed: 2, NextReview: reviewTime}
	s := flashcard.Scheduler{MaxIntervalDays: 5}

	out := s.Schedule(flashcard.Review{EaseFactor: card.EaseFactor, Streak: card.Streak, Rating: flashcard.Good, At: reviewTime})
	updated := flashcard.ApplyOutcome(card, out)

	assert.Equal(t, 5, out.IntervalDays)
	assert.Equal(t, reviewTime.AddDate(0, 0, out.IntervalDays), updated.NextReview)
	assert.Equal(t, out.EaseFactor, updated.EaseFactor)
	assert.Equal(t, 3, updated.Streak)
	assert.Equal(t, 3, updated.TimesReviewed)
	assert.Equal(t, s.ApplyReview(card, flashcard.Good, reviewTime), updated)
}
