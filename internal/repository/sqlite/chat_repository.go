package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new ChatRepository implementation
func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, s models.ChatSession) error {
	log := logger.FromContext(ctx).WithPrefix("chat_repo")
	log.Debug("creating chat session: id=%s profile_id=%d", s.ID, s.ProfileID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO chat_sessions (id, profile_id, title, created_at) VALUES (?, ?, ?, ?)
`, s.ID, s.ProfileID, s.Title, dbTime(s.CreatedAt))
	if err != nil {
		log.Error("failed to create chat session: %v", err)
		return mapWriteError(err)
	}
	return nil
}

func (r *chatRepository) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, title, created_at FROM chat_sessions WHERE id = ?
`, id).Scan(&s.ID, &s.ProfileID, &s.Title, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("chat_repo").Error("failed to get chat session: %v", err)
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

func (r *chatRepository) AppendMessages(ctx context.Context, messages ...models.ChatMessage) error {
	log := logger.FromContext(ctx).WithPrefix("chat_repo")
	log.Debug("appending %d chat messages", len(messages))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO chat_messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range messages {
			createdAt := m.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}
			if _, err := stmt.ExecContext(ctx, m.SessionID, m.Role, m.Content, dbTime(createdAt)); err != nil {
				log.Error("failed to insert chat message: %v", err)
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) RecentMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	log := logger.FromContext(ctx).WithPrefix("chat_repo")

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, role, content, created_at
FROM chat_messages
WHERE session_id = ?
ORDER BY id DESC
LIMIT ?
`, sessionID, limit)
	if err != nil {
		log.Error("failed to list chat messages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest first from the query; callers want chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
