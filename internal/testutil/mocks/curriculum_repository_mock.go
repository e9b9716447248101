package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ncertflash/internal/models"
)

// MockCurriculumRepository is a mock implementation of repository.CurriculumRepository
type MockCurriculumRepository struct {
	mock.Mock
}

func (m *MockCurriculumRepository) UpsertClass(ctx context.Context, class models.Class) (int64, error) {
	args := m.Called(ctx, class)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurriculumRepository) UpsertSubject(ctx context.Context, subject models.Subject) (int64, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurriculumRepository) UpsertChapter(ctx context.Context, chapter models.Chapter) (int64, error) {
	args := m.Called(ctx, chapter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurriculumRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Class), args.Error(1)
}

func (m *MockCurriculumRepository) ListSubjects(ctx context.Context, classLevel int) ([]models.Subject, error) {
	args := m.Called(ctx, classLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockCurriculumRepository) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockCurriculumRepository) ListChapters(ctx context.Context, subjectID int64) ([]models.Chapter, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

func (m *MockCurriculumRepository) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}
