package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ncertflash/internal/models"
)

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Upsert(ctx context.Context, question models.Question) (int64, error) {
	args := m.Called(ctx, question)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) ListByChapter(ctx context.Context, chapterID int64, limit int) ([]models.Question, error) {
	args := m.Called(ctx, chapterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByChapter(ctx context.Context, chapterID int64) (int, error) {
	args := m.Called(ctx, chapterID)
	return args.Int(0), args.Error(1)
}

// MockQuizAttemptRepository is a mock implementation of repository.QuizAttemptRepository
type MockQuizAttemptRepository struct {
	mock.Mock
}

func (m *MockQuizAttemptRepository) Insert(ctx context.Context, attempt models.QuizAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizAttemptRepository) ListByProfile(ctx context.Context, profileID int64, limit int) ([]models.QuizAttempt, error) {
	args := m.Called(ctx, profileID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizAttempt), args.Error(1)
}
