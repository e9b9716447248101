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
	"github.com/vytor/ncertflash/internal/quiz"
	"github.com/vytor/ncertflash/internal/services"
	"github.com/vytor/ncertflash/internal/testutil/mocks"
)

func quizQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Question: "1/2 + 1/2?", Options: []string{"1", "2", "1/4", "0"}, CorrectAnswer: 0, XPReward: 10},
		{ID: 2, Question: "1/4 of 8?", Options: []string{"4", "2", "8", "1"}, CorrectAnswer: 1, XPReward: 10},
	}
}

func newQuizService(t *testing.T) (services.QuizService, *mocks.MockQuizAttemptRepository) {
	curriculum := new(mocks.MockCurriculumRepository)
	curriculum.On("GetChapter", mock.Anything, int64(7)).Return(&models.Chapter{ID: 7, Title: "Fractions"}, nil)
	curriculum.On("GetChapter", mock.Anything, int64(8)).Return(&models.Chapter{ID: 8}, nil)
	curriculum.On("GetChapter", mock.Anything, int64(9)).Return(nil, nil)

	questions := new(mocks.MockQuestionRepository)
	questions.On("ListByChapter", mock.Anything, int64(7), 10).Return(quizQuestions(), nil)
	questions.On("ListByChapter", mock.Anything, int64(8), 10).Return(nil, nil)

	attempts := new(mocks.MockQuizAttemptRepository)
	return services.NewQuizService(curriculum, questions, attempts, fixedClock()), attempts
}

func TestQuizService_FullRun(t *testing.T) {
	svc, attempts := newQuizService(t)
	attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.ProfileID == 1 && a.ChapterID == 7 && a.Score == 1 && a.TotalQuestions == 2 && a.Percentage == 50 && a.XPEarned == 10
	})).Return(int64(1), nil).Once()
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, 1, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAnswering, snap.State)
	assert.Equal(t, -1, snap.Question.CorrectAnswer, "answer hidden while answering")

	_, err = svc.SelectOption(ctx, 1, snap.ID, 0)
	require.NoError(t, err)
	out, err := svc.CheckAnswer(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, 10, out.XPGained)
	assert.Equal(t, quiz.StateExplaining, out.Session.State)

	_, err = svc.NextQuestion(ctx, 1, snap.ID)
	require.NoError(t, err)
	_, err = svc.SelectOption(ctx, 1, snap.ID, 3)
	require.NoError(t, err)
	out, err = svc.CheckAnswer(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.False(t, out.Correct)

	done, err := svc.NextQuestion(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateComplete, done.State)
	assert.Equal(t, "D", done.Grade)

	_, err = svc.NextQuestion(ctx, 1, snap.ID)
	requireAppError(t, err, errors.ErrCodeConflict)
	attempts.AssertNumberOfCalls(t, "Insert", 1)

	retried, err := svc.RetryQuiz(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAnswering, retried.State)
	assert.Equal(t, 0, retried.Score)
}

func TestQuizService_Errors(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	_, err := svc.StartQuiz(ctx, 1, 9, 0)
	requireAppError(t, err, errors.ErrCodeNotFound)

	_, err = svc.StartQuiz(ctx, 1, 8, 0)
	requireAppError(t, err, errors.ErrCodeNotFound)

	_, err = svc.StartQuiz(ctx, 1, 7, 500)
	requireAppError(t, err, errors.ErrCodeValidation)

	snap, err := svc.StartQuiz(ctx, 1, 7, 0)
	require.NoError(t, err)

	_, err = svc.GetQuiz(ctx, 2, snap.ID)
	requireAppError(t, err, errors.ErrCodeNotFound)

	_, err = svc.CheckAnswer(ctx, 1, snap.ID)
	requireAppError(t, err, errors.ErrCodeConflict)

	_, err = svc.SelectOption(ctx, 1, snap.ID, 4)
	requireAppError(t, err, errors.ErrCodeValidation)

	got, err := svc.GetQuiz(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}

func TestQuizService_RetriesFailedAttemptInsert(t *testing.T) {
	svc, attempts := newQuizService(t)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(0), stderrors.New("disk full")).Once()
	attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.ProfileID == 1 && a.Score == 2 && a.TotalQuestions == 2
	})).Return(int64(1), nil).Once()
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, 1, 7, 0)
	require.NoError(t, err)
	for i, option := range []int{0, 1} {
		_, err = svc.SelectOption(ctx, 1, snap.ID, option)
		require.NoError(t, err)
		_, err = svc.CheckAnswer(ctx, 1, snap.ID)
		require.NoError(t, err)
		if i == 0 {
			_, err = svc.NextQuestion(ctx, 1, snap.ID)
			require.NoError(t, err)
		}
	}

	_, err = svc.NextQuestion(ctx, 1, snap.ID)
	requireAppError(t, err, errors.ErrCodeInternal)

	got, err := svc.GetQuiz(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateComplete, got.State)

	done, err := svc.NextQuestion(ctx, 1, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateComplete, done.State)
	assert.Equal(t, 2, done.Score)

	_, err = svc.NextQuestion(ctx, 1, snap.ID)
	requireAppError(t, err, errors.ErrCodeConflict)
	attempts.AssertNumberOfCalls(t, "Insert", 2)
	attempts.AssertExpectations(t)
}
