package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ncertflash/internal/models"
)

// MockLearningStyleRepository is a mock implementation of repository.LearningStyleRepository
type MockLearningStyleRepository struct {
	mock.Mock
}

func (m *MockLearningStyleRepository) Upsert(ctx context.Context, style models.LearningStyle) error {
	args := m.Called(ctx, style)
	return args.Error(0)
}

func (m *MockLearningStyleRepository) Get(ctx context.Context, profileID int64) (*models.LearningStyle, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningStyle), args.Error(1)
}
