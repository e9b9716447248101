// Package memory holds process-local repository implementations used when
// no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

// FlashcardRepository keeps cards in a map keyed by id. All methods are safe
// for concurrent use and return copies, never pointers into the store.
type FlashcardRepository struct {
	mu      sync.RWMutex
	nextID  int64
	cards   map[int64]models.Flashcard
	reviews []models.ReviewHistory
}

var _ repository.FlashcardRepository = (*FlashcardRepository)(nil)

// NewFlashcardRepository creates an empty in-memory FlashcardRepository
func NewFlashcardRepository() *FlashcardRepository {
	return &FlashcardRepository{cards: make(map[int64]models.Flashcard)}
}

func (r *FlashcardRepository) Insert(ctx context.Context, card models.Flashcard) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	card.ID = r.nextID
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}
	r.cards[card.ID] = cloneCard(card)

	logger.FromContext(ctx).WithPrefix("flashcard_mem").Debug("flashcard inserted: id=%d profile_id=%d", card.ID, card.ProfileID)
	return card.ID, nil
}

func (r *FlashcardRepository) Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[id]
	if !ok || card.ProfileID != profileID {
		return nil, nil
	}
	c := cloneCard(card)
	return &c, nil
}

func matches(card models.Flashcard, filter models.FlashcardFilter) bool {
	if card.ProfileID != filter.ProfileID {
		return false
	}
	if filter.Subject != "" && card.Subject != filter.Subject {
		return false
	}
	switch filter.Filter {
	case models.FilterDue:
		return !card.NextReview.After(filter.Now)
	case models.FilterNew:
		return card.LastReviewed == nil
	}
	return true
}

func (r *FlashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	r.mu.RLock()
	var out []models.Flashcard
	for _, card := range r.cards {
		if matches(card, filter) {
			out = append(out, cloneCard(card))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextReview.Equal(out[j].NextReview) {
			return out[i].NextReview.Before(out[j].NextReview)
		}
		return out[i].ID < out[j].ID
	})

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *FlashcardRepository) Count(ctx context.Context, filter models.FlashcardFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, card := range r.cards {
		if matches(card, filter) {
			n++
		}
	}
	return n, nil
}

func (r *FlashcardRepository) NextDue(ctx context.Context, profileID int64, now time.Time) (*models.Flashcard, error) {
	cards, err := r.List(ctx, models.FlashcardFilter{ProfileID: profileID, Filter: models.FilterDue, Now: now, Limit: 1})
	if err != nil || len(cards) == 0 {
		return nil, err
	}
	return &cards[0], nil
}

func (r *FlashcardRepository) UpdateSchedule(ctx context.Context, card models.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.cards[card.ID]
	if !ok || stored.ProfileID != card.ProfileID {
		return repository.ErrNotFound
	}
	stored.EaseFactor = card.EaseFactor
	stored.Streak = card.Streak
	stored.NextReview = card.NextReview
	stored.TimesReviewed = card.TimesReviewed
	stored.LastReviewed = nil
	if card.LastReviewed != nil {
		t := *card.LastReviewed
		stored.LastReviewed = &t
	}
	r.cards[card.ID] = stored
	return nil
}

func (r *FlashcardRepository) InsertReviewHistory(ctx context.Context, review models.ReviewHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[review.FlashcardID]; !ok {
		return repository.ErrNotFound
	}
	review.ID = int64(len(r.reviews) + 1)
	r.reviews = append(r.reviews, review)
	return nil
}

// Reviews returns the recorded review history of a card, oldest first.
func (r *FlashcardRepository) Reviews(flashcardID int64) []models.ReviewHistory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.ReviewHistory
	for _, h := range r.reviews {
		if h.FlashcardID == flashcardID {
			out = append(out, h)
		}
	}
	return out
}

func (r *FlashcardRepository) Stats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s models.FlashcardStat
	var easeSum float64
	for _, card := range r.cards {
		if card.ProfileID != profileID {
			continue
		}
		s.TotalCards++
		easeSum += card.EaseFactor
		s.TotalReviews += card.TimesReviewed
		if !card.NextReview.After(now) {
			s.CardsDue++
		}
		if card.LastReviewed == nil {
			s.CardsNew++
		}
		if card.Streak >= 3 {
			s.CardsMastered++
		}
	}
	if s.TotalCards > 0 {
		s.AvgEaseFactor = easeSum / float64(s.TotalCards)
	}
	return &s, nil
}

func (r *FlashcardRepository) SubjectCounts(ctx context.Context, profileID int64, now time.Time) ([]models.SubjectCount, error) {
	r.mu.RLock()
	bySubject := make(map[string]*models.SubjectCount)
	for _, card := range r.cards {
		if card.ProfileID != profileID {
			continue
		}
		sc, ok := bySubject[card.Subject]
		if !ok {
			sc = &models.SubjectCount{Subject: card.Subject}
			bySubject[card.Subject] = sc
		}
		sc.Cards++
		if !card.NextReview.After(now) {
			sc.Due++
		}
	}
	r.mu.RUnlock()

	out := make([]models.SubjectCount, 0, len(bySubject))
	for _, sc := range bySubject {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

func cloneCard(c models.Flashcard) models.Flashcard {
	if c.LastReviewed != nil {
		t := *c.LastReviewed
		c.LastReviewed = &t
	}
	return c
}
