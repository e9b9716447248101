package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/ncertflash/internal/tutor"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueQuestionGeneration(req tutor.QuestionRequest) error {
	args := m.Called(req)
	return args.Error(0)
}
