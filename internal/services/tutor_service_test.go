package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/services"
	"github.com/vytor/ncertflash/internal/testutil/mocks"
	"github.com/vytor/ncertflash/internal/tutor"
	"github.com/vytor/ncertflash/internal/vark"
)

type tutorFixture struct {
	provider *tutor.MockProvider
	profiles *mocks.MockProfileRepository
	styles   *mocks.MockLearningStyleRepository
	chats    *mocks.MockChatRepository
	svc      services.TutorService
}

func newTutorFixture() *tutorFixture {
	f := &tutorFixture{
		provider: tutor.NewMockProvider(),
		profiles: new(mocks.MockProfileRepository),
		styles:   new(mocks.MockLearningStyleRepository),
		chats:    new(mocks.MockChatRepository),
	}
	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1, ClassLevel: 7, Role: models.RoleStudent}, nil)
	f.svc = services.NewTutorService(f.provider, f.profiles, f.styles, f.chats, 4, fixedClock())
	return f
}

func TestTutorService_ChatNewSession(t *testing.T) {
	f := newTutorFixture()
	f.styles.On("Get", mock.Anything, int64(1)).Return(&models.LearningStyle{DominantStyle: vark.Kinesthetic}, nil)
	f.chats.On("CreateSession", mock.Anything, mock.MatchedBy(func(s models.ChatSession) bool {
		return s.ProfileID == 1 && s.ID != "" && s.Title == "What is a fraction?"
	})).Return(nil)
	f.chats.On("AppendMessages", mock.Anything, mock.MatchedBy(func(msgs []models.ChatMessage) bool {
		return len(msgs) == 2 && msgs[0].Role == models.ChatRoleUser && msgs[1].Content == "A part of a whole."
	})).Return(nil)
	f.provider.AddText("A part of a whole.")

	reply, err := f.svc.Chat(context.Background(), 1, services.ChatInput{Message: " What is a fraction? ", Subject: "Mathematics"})

	require.NoError(t, err)
	assert.False(t, reply.Fallback)
	assert.Equal(t, "A part of a whole.", reply.Reply)
	assert.NotEmpty(t, reply.SessionID)

	call, ok := f.provider.LastCall()
	require.True(t, ok)
	assert.Contains(t, call.System, "Class 7 Mathematics")
	assert.Contains(t, call.System, "kinesthetic")
	require.Len(t, call.Messages, 1)
	f.chats.AssertExpectations(t)
}

func TestTutorService_ChatUsesHistory(t *testing.T) {
	f := newTutorFixture()
	f.styles.On("Get", mock.Anything, int64(1)).Return(nil, nil)
	f.chats.On("GetSession", mock.Anything, "s1").Return(&models.ChatSession{ID: "s1", ProfileID: 1}, nil)
	f.chats.On("RecentMessages", mock.Anything, "s1", 4).Return([]models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
		{Role: models.ChatRoleAssistant, Content: "hello"},
	}, nil)
	f.chats.On("AppendMessages", mock.Anything, mock.Anything).Return(nil)
	f.provider.AddText("sure")

	reply, err := f.svc.Chat(context.Background(), 1, services.ChatInput{Message: "explain again", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", reply.SessionID)

	call, _ := f.provider.LastCall()
	require.Len(t, call.Messages, 3)
	assert.Equal(t, tutor.RoleAssistant, call.Messages[1].Role)
	assert.Equal(t, "explain again", call.Messages[2].Content)
	assert.Contains(t, call.System, "visual")
}

func TestTutorService_ChatFallback(t *testing.T) {
	f := newTutorFixture()
	f.styles.On("Get", mock.Anything, int64(1)).Return(nil, stderrors.New("db locked"))
	f.chats.On("CreateSession", mock.Anything, mock.Anything).Return(nil)

	reply, err := f.svc.Chat(context.Background(), 1, services.ChatInput{Message: "hello"})

	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, tutor.FallbackReply, reply.Reply)
	f.chats.AssertNotCalled(t, "AppendMessages", mock.Anything, mock.Anything)
}

func TestTutorService_ChatErrors(t *testing.T) {
	f := newTutorFixture()
	f.styles.On("Get", mock.Anything, int64(1)).Return(nil, nil)
	f.chats.On("GetSession", mock.Anything, "other").Return(&models.ChatSession{ID: "other", ProfileID: 2}, nil)
	ctx := context.Background()

	_, err := f.svc.Chat(ctx, 1, services.ChatInput{Message: "   "})
	requireAppError(t, err, errors.ErrCodeValidation)

	_, err = f.svc.Chat(ctx, 1, services.ChatInput{Message: "hi", SessionID: "other"})
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestTutorService_Health(t *testing.T) {
	f := newTutorFixture()

	h := f.svc.Health(context.Background())
	assert.True(t, h.Available)
	assert.Equal(t, "mock", h.Model)

	f.provider.PingErr = stderrors.New("connection refused")
	h = f.svc.Health(context.Background())
	assert.False(t, h.Available)
	assert.Equal(t, "connection refused", h.Error)
}
