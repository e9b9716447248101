package flashcard

import (
	"math"
	"time"

	"github.com/vytor/ncertflash/internal/models"
)

const (
	MinEaseFactor     = 1.3
	DefaultEaseFactor = 2.5
	// PassingQuality is the lowest quality that keeps a streak alive.
	PassingQuality = 3
)

// NextEaseFactor applies the SM-2 ease update for a 0-5 quality, floored at MinEaseFactor.
func NextEaseFactor(ef float64, quality int) float64 {
	miss := float64(5 - quality)
	ef = ef + (0.1 - miss*(0.08+miss*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}
	return ef
}

// IntervalDays returns the days until the next review. streak is the count of
// consecutive successes before this review and ef is the already updated ease.
// Past the second success the interval grows with the post-review streak.
func IntervalDays(quality, streak int, ef float64) int {
	switch {
	case quality < PassingQuality:
		return 1
	case streak <= 0:
		return 1
	case streak == 1:
		return 6
	default:
		return int(math.Round(float64(streak+1) * ef))
	}
}

// Review is one rating of a card at a point in time.
type Review struct {
	EaseFactor float64
	Streak     int
	Rating     Rating
	At         time.Time
}

// Outcome is the schedule produced by a Review.
type Outcome struct {
	Quality      int
	EaseFactor   float64
	Streak       int
	IntervalDays int
	LastReviewed time.Time
	NextReview   time.Time
}

// Scheduler computes review outcomes. The zero value is ready to use and
// does not cap intervals.
type Scheduler struct {
	// MaxIntervalDays caps the interval when positive.
	MaxIntervalDays int
}

// Schedule is a pure function of the review.
func (s Scheduler) Schedule(r Review) Outcome {
	q := r.Rating.Quality()
	ef := r.EaseFactor
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}
	ef = NextEaseFactor(ef, q)

	streak := r.Streak
	if streak < 0 {
		streak = 0
	}
	interval := IntervalDays(q, streak, ef)
	if s.MaxIntervalDays > 0 && interval > s.MaxIntervalDays {
		interval = s.MaxIntervalDays
	}

	newStreak := 0
	if q >= PassingQuality {
		newStreak = streak + 1
	}

	return Outcome{
		Quality:      q,
		EaseFactor:   ef,
		Streak:       newStreak,
		IntervalDays: interval,
		LastReviewed: r.At,
		NextReview:   r.At.AddDate(0, 0, interval),
	}
}

// ApplyReview returns a copy of card with the review outcome applied.
func (s Scheduler) ApplyReview(card models.Flashcard, rating Rating, now time.Time) models.Flashcard {
	out := s.Schedule(Review{
		EaseFactor: card.EaseFactor,
		Streak:     card.Streak,
		Rating:     rating,
		At:         now,
	})

	return ApplyOutcome(card, out)
}

// ApplyOutcome returns a copy of card carrying a computed schedule.
func ApplyOutcome(card models.Flashcard, out Outcome) models.Flashcard {
	reviewed := out.LastReviewed
	card.EaseFactor = out.EaseFactor
	card.Streak = out.Streak
	card.LastReviewed = &reviewed
	card.NextReview = out.NextReview
	card.TimesReviewed++
	return card
}

// IsDue reports whether the card should be shown at now.
func IsDue(card models.Flashcard, now time.Time) bool {
	return !now.Before(card.NextReview)
}

// NewCard fills in the scheduling defaults for a freshly created card.
func NewCard(card models.Flashcard, now time.Time) models.Flashcard {
	if card.EaseFactor < MinEaseFactor {
		card.EaseFactor = DefaultEaseFactor
	}
	if card.Difficulty == "" {
		card.Difficulty = models.DifficultyMedium
	}
	if card.Chapter == "" {
		card.Chapter = "Custom"
	}
	card.Streak = 0
	card.LastReviewed = nil
	card.NextReview = now
	return card
}
