package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Upsert(ctx context.Context, q models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("upserting question: chapter_id=%d source=%s", q.ChapterID, q.Source)

	options, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("marshal options: %w", err)
	}
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
INSERT INTO questions (chapter_id, question, options, correct_answer, explanation, bloom_level, difficulty, xp_reward, source, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(chapter_id, question) DO UPDATE SET
    options = excluded.options,
    correct_answer = excluded.correct_answer,
    explanation = excluded.explanation,
    bloom_level = excluded.bloom_level,
    difficulty = excluded.difficulty,
    xp_reward = excluded.xp_reward
RETURNING id
`, q.ChapterID, q.Question, string(options), q.CorrectAnswer, q.Explanation, q.BloomLevel, q.Difficulty, q.XPReward, q.Source, dbTime(createdAt)).Scan(&id)
	if err != nil {
		log.Error("failed to upsert question: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *questionRepository) ListByChapter(ctx context.Context, chapterID int64, limit int) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, chapter_id, question, options, correct_answer, explanation, bloom_level, difficulty, xp_reward, source, created_at
FROM questions
WHERE chapter_id = ?
ORDER BY id ASC
LIMIT ?
`, chapterID, limit)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var options string
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.Question, &options, &q.CorrectAnswer, &q.Explanation,
			&q.BloomLevel, &q.Difficulty, &q.XPReward, &q.Source, &q.CreatedAt); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		q.CreatedAt = q.CreatedAt.UTC()
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *questionRepository) CountByChapter(ctx context.Context, chapterID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE chapter_id = ?`, chapterID).Scan(&n)
	return n, err
}
