package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/tutor"
	"github.com/vytor/ncertflash/internal/vark"
)

const (
	defaultChatHistory = 10
	maxChatMessageLen  = 4000
	chatTitleLen       = 60
)

// ChatInput is one student message to the tutor.
type ChatInput struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id"`
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
}

// ChatReply is the tutor's answer.
type ChatReply struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
	Model     string `json:"model"`
	// Fallback is set when the model could not be reached and Reply holds
	// generic study tips.
	Fallback bool `json:"fallback"`
}

// TutorHealth reports which model the tutor uses and whether it answers.
type TutorHealth struct {
	Model     string `json:"model"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// TutorService handles the AI study chat
type TutorService interface {
	Chat(ctx context.Context, profileID int64, input ChatInput) (*ChatReply, error)
	Health(ctx context.Context) TutorHealth
}

type tutorService struct {
	provider     tutor.Provider
	profileRepo  repository.ProfileRepository
	styleRepo    repository.LearningStyleRepository
	chatRepo     repository.ChatRepository
	historyLimit int
	clock        Clock
}

// NewTutorService creates a new TutorService. historyLimit is the number of
// earlier messages sent with each chat turn; zero means ten.
func NewTutorService(
	provider tutor.Provider,
	profileRepo repository.ProfileRepository,
	styleRepo repository.LearningStyleRepository,
	chatRepo repository.ChatRepository,
	historyLimit int,
	clock Clock,
) TutorService {
	if historyLimit <= 0 {
		historyLimit = defaultChatHistory
	}
	return &tutorService{
		provider:     provider,
		profileRepo:  profileRepo,
		styleRepo:    styleRepo,
		chatRepo:     chatRepo,
		historyLimit: historyLimit,
		clock:        clock,
	}
}

func chatTitle(message string) string {
	if utf8.RuneCountInString(message) <= chatTitleLen {
		return message
	}
	return string([]rune(message)[:chatTitleLen])
}

func (s *tutorService) Chat(ctx context.Context, profileID int64, input ChatInput) (*ChatReply, error) {
	log := logger.FromContext(ctx).WithPrefix("tutor")

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, errors.NewValidationError("message", "cannot be empty")
	}
	if utf8.RuneCountInString(message) > maxChatMessageLen {
		return nil, errors.NewValidationError("message", "is too long")
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	style := vark.Visual
	ls, err := s.styleRepo.Get(ctx, profileID)
	if err != nil {
		log.Warn("failed to load learning style, using %s: %v", style, err)
	} else if ls != nil {
		style = ls.DominantStyle
	}

	now := s.clock.now()
	sessionID := input.SessionID
	var history []tutor.Message
	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := s.chatRepo.CreateSession(ctx, models.ChatSession{
			ID:        sessionID,
			ProfileID: profileID,
			Title:     chatTitle(message),
			CreatedAt: now,
		}); err != nil {
			log.Error("failed to create chat session: %v", err)
			return nil, errors.NewInternalError(err)
		}
	} else {
		session, err := s.chatRepo.GetSession(ctx, sessionID)
		if err != nil {
			log.Error("failed to get chat session: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if session == nil || session.ProfileID != profileID {
			return nil, errors.NewNotFoundError("chat session", sessionID)
		}
		previous, err := s.chatRepo.RecentMessages(ctx, sessionID, s.historyLimit)
		if err != nil {
			log.Error("failed to load chat history: %v", err)
			return nil, errors.NewInternalError(err)
		}
		for _, m := range previous {
			history = append(history, tutor.Message{Role: tutor.Role(m.Role), Content: m.Content})
		}
	}

	req := tutor.Request{
		System: tutor.SystemPrompt(tutor.ChatContext{
			Style:      style,
			ClassLevel: profile.ClassLevel,
			Subject:    input.Subject,
			Topic:      input.Topic,
		}),
		Messages:    append(history, tutor.Message{Role: tutor.RoleUser, Content: message}),
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		if tutor.IsUnavailable(err) {
			log.Warn("model unavailable, sending fallback reply: %v", err)
		} else {
			log.Error("tutor reply failed, sending fallback reply: %v", err)
		}
		return &ChatReply{
			Reply:     tutor.FallbackReply,
			SessionID: sessionID,
			Model:     s.provider.ModelID(),
			Fallback:  true,
		}, nil
	}

	reply := strings.TrimSpace(resp.Text())
	if err := s.chatRepo.AppendMessages(ctx,
		models.ChatMessage{SessionID: sessionID, Role: models.ChatRoleUser, Content: message, CreatedAt: now},
		models.ChatMessage{SessionID: sessionID, Role: models.ChatRoleAssistant, Content: reply, CreatedAt: s.clock.now()},
	); err != nil {
		log.Warn("failed to store chat messages: %v", err)
	}

	return &ChatReply{Reply: reply, SessionID: sessionID, Model: resp.Model}, nil
}

func (s *tutorService) Health(ctx context.Context) TutorHealth {
	h := TutorHealth{Model: s.provider.ModelID(), Available: true}
	pinger, ok := s.provider.(tutor.Pinger)
	if !ok {
		return h
	}
	if err := pinger.Ping(ctx); err != nil {
		logger.FromContext(ctx).WithPrefix("tutor").Warn("model health check failed: %v", err)
		h.Available = false
		h.Error = err.Error()
	}
	return h
}
