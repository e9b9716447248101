package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type quizAttemptRepository struct {
	db *sql.DB
}

// NewQuizAttemptRepository creates a new QuizAttemptRepository implementation
func NewQuizAttemptRepository(db *sql.DB) repository.QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Insert(ctx context.Context, a models.QuizAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_attempt_repo")
	log.Debug("recording quiz attempt: profile_id=%d chapter_id=%d score=%d/%d", a.ProfileID, a.ChapterID, a.Score, a.TotalQuestions)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (profile_id, chapter_id, score, total_questions, percentage, xp_earned, duration_seconds, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.ProfileID, a.ChapterID, a.Score, a.TotalQuestions, a.Percentage, a.XPEarned, a.DurationSeconds, dbTime(a.CompletedAt))
	if err != nil {
		log.Error("failed to record quiz attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *quizAttemptRepository) ListByProfile(ctx context.Context, profileID int64, limit int) ([]models.QuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_attempt_repo")

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, chapter_id, score, total_questions, percentage, xp_earned, duration_seconds, completed_at
FROM quiz_attempts
WHERE profile_id = ?
ORDER BY completed_at DESC, id DESC
LIMIT ?
`, profileID, limit)
	if err != nil {
		log.Error("failed to list quiz attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.ChapterID, &a.Score, &a.TotalQuestions, &a.Percentage,
			&a.XPEarned, &a.DurationSeconds, &a.CompletedAt); err != nil {
			return nil, err
		}
		a.CompletedAt = a.CompletedAt.UTC()
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
