package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ncertflash/internal/models"
)

// MockClassroomRepository is a mock implementation of repository.ClassroomRepository
type MockClassroomRepository struct {
	mock.Mock
}

func (m *MockClassroomRepository) Create(ctx context.Context, classroom models.Classroom) (int64, error) {
	args := m.Called(ctx, classroom)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassroomRepository) Get(ctx context.Context, id int64) (*models.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) GetByInviteCode(ctx context.Context, code string) (*models.Classroom, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassroomSummary, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClassroomSummary), args.Error(1)
}

func (m *MockClassroomRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ClassroomSummary, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClassroomSummary), args.Error(1)
}

func (m *MockClassroomRepository) Enroll(ctx context.Context, enrollment models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockClassroomRepository) Students(ctx context.Context, classroomID int64) ([]models.ClassroomStudent, error) {
	args := m.Called(ctx, classroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClassroomStudent), args.Error(1)
}

func (m *MockClassroomRepository) TeacherStudents(ctx context.Context, teacherID int64) ([]models.ClassroomStudent, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClassroomStudent), args.Error(1)
}
