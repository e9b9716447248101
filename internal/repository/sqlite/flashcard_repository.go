package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

var flashcardColumns = []string{
	"id", "profile_id", "front", "back", "subject", "chapter", "difficulty",
	"ease_factor", "streak", "last_reviewed", "next_review", "times_reviewed", "created_at",
}

func scanFlashcard(row interface{ Scan(...any) error }) (models.Flashcard, error) {
	var c models.Flashcard
	var lastReviewed sql.NullTime
	err := row.Scan(&c.ID, &c.ProfileID, &c.Front, &c.Back, &c.Subject, &c.Chapter, &c.Difficulty,
		&c.EaseFactor, &c.Streak, &lastReviewed, &c.NextReview, &c.TimesReviewed, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	c.LastReviewed = timePtr(lastReviewed)
	c.NextReview = c.NextReview.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: profile_id=%d subject=%s", c.ProfileID, c.Subject)

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (profile_id, front, back, subject, chapter, difficulty, ease_factor, streak, last_reviewed, next_review, times_reviewed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ProfileID, c.Front, c.Back, c.Subject, c.Chapter, c.Difficulty, c.EaseFactor, c.Streak,
		nullTime(c.LastReviewed), dbTime(c.NextReview), c.TimesReviewed, dbTime(createdAt))
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get flashcard id: %v", err)
		return 0, err
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, nil
}

func (r *flashcardRepository) Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%d profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanFlashcard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func applyFlashcardFilter(q squirrel.SelectBuilder, filter models.FlashcardFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	switch filter.Filter {
	case models.FilterDue:
		q = q.Where(squirrel.LtOrEq{"next_review": dbTime(filter.Now)})
	case models.FilterNew:
		q = q.Where(squirrel.Eq{"last_reviewed": nil})
	}
	if filter.Subject != "" {
		q = q.Where(squirrel.Eq{"subject": filter.Subject})
	}
	return q
}

func (r *flashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: profile_id=%d filter=%s subject=%s", filter.ProfileID, filter.Filter, filter.Subject)

	q := applyFlashcardFilter(sqlBuilder.Select(flashcardColumns...).From("flashcards"), filter).
		OrderBy("next_review ASC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	q = q.Limit(uint64(limit)).Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) Count(ctx context.Context, filter models.FlashcardFilter) (int, error) {
	query, args, err := applyFlashcardFilter(sqlBuilder.Select("COUNT(*)").From("flashcards"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("flashcard_repo").Error("failed to count flashcards: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *flashcardRepository) NextDue(ctx context.Context, profileID int64, now time.Time) (*models.Flashcard, error) {
	cards, err := r.List(ctx, models.FlashcardFilter{
		ProfileID: profileID,
		Filter:    models.FilterDue,
		Now:       now,
		Limit:     1,
	})
	if err != nil || len(cards) == 0 {
		return nil, err
	}
	return &cards[0], nil
}

func (r *flashcardRepository) UpdateSchedule(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard schedule: id=%d ease=%.2f streak=%d", c.ID, c.EaseFactor, c.Streak)

	res, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET ease_factor = ?, streak = ?, last_reviewed = ?, next_review = ?, times_reviewed = ?
WHERE id = ? AND profile_id = ?
`, c.EaseFactor, c.Streak, nullTime(c.LastReviewed), dbTime(c.NextReview), c.TimesReviewed, c.ID, c.ProfileID)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
		return err
	}
	return affectedOrNotFound(res)
}

func (r *flashcardRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting review history: flashcard_id=%d quality=%d time=%.2fs", h.FlashcardID, h.Quality, h.TimeSeconds)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (flashcard_id, profile_id, rating, quality, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, h.FlashcardID, h.ProfileID, h.Rating, h.Quality, h.TimeSeconds, dbTime(h.ReviewedAt))
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func (r *flashcardRepository) Stats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("computing flashcard stats: profile_id=%d", profileID)

	var s models.FlashcardStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN next_review <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN last_reviewed IS NULL THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN streak >= 3 THEN 1 ELSE 0 END), 0),
    COALESCE(AVG(ease_factor), 0),
    COALESCE(SUM(times_reviewed), 0)
FROM flashcards
WHERE profile_id = ?
`, dbTime(now), profileID).Scan(&s.TotalCards, &s.CardsDue, &s.CardsNew, &s.CardsMastered, &s.AvgEaseFactor, &s.TotalReviews)
	if err != nil {
		log.Error("failed to compute flashcard stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *flashcardRepository) SubjectCounts(ctx context.Context, profileID int64, now time.Time) ([]models.SubjectCount, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	query, args, err := sqlBuilder.
		Select("subject", "COUNT(*)").
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN next_review <= ? THEN 1 ELSE 0 END), 0)", dbTime(now))).
		From("flashcards").
		Where(squirrel.Eq{"profile_id": profileID}).
		GroupBy("subject").
		OrderBy("subject ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to count flashcards by subject: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.SubjectCount
	for rows.Next() {
		var sc models.SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Cards, &sc.Due); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
