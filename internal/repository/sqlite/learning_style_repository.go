package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type learningStyleRepository struct {
	db *sql.DB
}

// NewLearningStyleRepository creates a new LearningStyleRepository implementation
func NewLearningStyleRepository(db *sql.DB) repository.LearningStyleRepository {
	return &learningStyleRepository{db: db}
}

func (r *learningStyleRepository) Upsert(ctx context.Context, ls models.LearningStyle) error {
	log := logger.FromContext(ctx).WithPrefix("learning_style_repo")
	log.Debug("saving learning style: profile_id=%d dominant=%s", ls.ProfileID, ls.DominantStyle)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO learning_styles (profile_id, visual, auditory, reading, kinesthetic, dominant_style, assessed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id) DO UPDATE SET
    visual = excluded.visual,
    auditory = excluded.auditory,
    reading = excluded.reading,
    kinesthetic = excluded.kinesthetic,
    dominant_style = excluded.dominant_style,
    assessed_at = excluded.assessed_at
`, ls.ProfileID, ls.Visual, ls.Auditory, ls.Reading, ls.Kinesthetic, string(ls.DominantStyle), dbTime(ls.AssessedAt))
	if err != nil {
		log.Error("failed to save learning style: %v", err)
	}
	return err
}

func (r *learningStyleRepository) Get(ctx context.Context, profileID int64) (*models.LearningStyle, error) {
	log := logger.FromContext(ctx).WithPrefix("learning_style_repo")

	var ls models.LearningStyle
	err := r.db.QueryRowContext(ctx, `
SELECT profile_id, visual, auditory, reading, kinesthetic, dominant_style, assessed_at
FROM learning_styles
WHERE profile_id = ?
`, profileID).Scan(&ls.ProfileID, &ls.Visual, &ls.Auditory, &ls.Reading, &ls.Kinesthetic, &ls.DominantStyle, &ls.AssessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no learning style for profile_id=%d", profileID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learning style: %v", err)
		return nil, err
	}
	ls.AssessedAt = ls.AssessedAt.UTC()
	return &ls, nil
}
