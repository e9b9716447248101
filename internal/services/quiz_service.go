package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/quiz"
	"github.com/vytor/ncertflash/internal/repository"
)

const (
	defaultQuizLength = 10
	maxQuizLength     = 50
	quizSessionTTL    = 2 * time.Hour
)

// CheckOutcome is the graded answer with the session state after it.
type CheckOutcome struct {
	quiz.CheckResult
	Session quiz.Snapshot `json:"session"`
}

// QuizService runs quiz sessions and records completed attempts
type QuizService interface {
	StartQuiz(ctx context.Context, profileID, chapterID int64, length int) (*quiz.Snapshot, error)
	GetQuiz(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error)
	SelectOption(ctx context.Context, profileID int64, sessionID string, option int) (*quiz.Snapshot, error)
	CheckAnswer(ctx context.Context, profileID int64, sessionID string) (*CheckOutcome, error)
	NextQuestion(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error)
	RetryQuiz(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error)
	ListAttempts(ctx context.Context, profileID int64) ([]models.QuizAttempt, error)
}

type quizEntry struct {
	session *quiz.Session
	touched time.Time
	// pending holds a completed attempt until it is stored; saving is set
	// while the insert runs outside the lock.
	pending  *models.QuizAttempt
	saving   bool
	recorded bool
}

type quizService struct {
	curriculumRepo repository.CurriculumRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.QuizAttemptRepository
	clock          Clock

	mu       sync.Mutex
	sessions map[string]*quizEntry
}

// NewQuizService creates a new QuizService. Sessions live in memory and are
// dropped after two hours without activity.
func NewQuizService(curriculumRepo repository.CurriculumRepository, questionRepo repository.QuestionRepository, attemptRepo repository.QuizAttemptRepository, clock Clock) QuizService {
	return &quizService{
		curriculumRepo: curriculumRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		clock:          clock,
		sessions:       make(map[string]*quizEntry),
	}
}

func quizError(err error) error {
	switch {
	case stderrors.Is(err, quiz.ErrInvalidOption):
		return errors.NewValidationError("option", "out of range")
	case stderrors.Is(err, quiz.ErrInvalidTransition):
		return errors.NewConflictError("action not allowed in the current quiz state")
	}
	return errors.NewInternalError(err)
}

func (s *quizService) StartQuiz(ctx context.Context, profileID, chapterID int64, length int) (*quiz.Snapshot, error) {
	log := logger.FromContext(ctx)

	if length <= 0 {
		length = defaultQuizLength
	}
	if length > maxQuizLength {
		return nil, errors.NewValidationError("length", "cannot exceed 50")
	}

	chapter, err := s.curriculumRepo.GetChapter(ctx, chapterID)
	if err != nil {
		log.Error("failed to get chapter: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if chapter == nil {
		return nil, errors.NewNotFoundError("chapter", chapterID)
	}

	questions, err := s.questionRepo.ListByChapter(ctx, chapterID, length)
	if err != nil {
		log.Error("failed to load questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	now := s.clock.now()
	session, err := quiz.NewSession(uuid.NewString(), profileID, chapterID, questions, now)
	if stderrors.Is(err, quiz.ErrNoQuestions) {
		return nil, errors.NewNotFoundError("questions for chapter", chapterID)
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.sessions[session.ID] = &quizEntry{session: session, touched: now}
	s.mu.Unlock()

	log.Info("quiz started: session=%s chapter_id=%d questions=%d", session.ID, chapterID, len(questions))
	snap := session.Snapshot()
	return &snap, nil
}

func (s *quizService) pruneLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.touched) > quizSessionTTL {
			delete(s.sessions, id)
		}
	}
}

// withSession runs fn on the profile's session while holding the lock.
func (s *quizService) withSession(profileID int64, sessionID string, fn func(*quizEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok || e.session.ProfileID != profileID {
		return errors.NewNotFoundError("quiz session", sessionID)
	}
	e.touched = s.clock.now()
	return fn(e)
}

func (s *quizService) GetQuiz(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error) {
	var snap quiz.Snapshot
	err := s.withSession(profileID, sessionID, func(e *quizEntry) error {
		snap = e.session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *quizService) SelectOption(ctx context.Context, profileID int64, sessionID string, option int) (*quiz.Snapshot, error) {
	var snap quiz.Snapshot
	err := s.withSession(profileID, sessionID, func(e *quizEntry) error {
		if err := e.session.Select(option); err != nil {
			return quizError(err)
		}
		snap = e.session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *quizService) CheckAnswer(ctx context.Context, profileID int64, sessionID string) (*CheckOutcome, error) {
	var out CheckOutcome
	err := s.withSession(profileID, sessionID, func(e *quizEntry) error {
		res, err := e.session.Check()
		if err != nil {
			return quizError(err)
		}
		out = CheckOutcome{CheckResult: res, Session: e.session.Snapshot()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *quizService) NextQuestion(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error) {
	log := logger.FromContext(ctx)

	var snap quiz.Snapshot
	var entry *quizEntry
	var attempt models.QuizAttempt
	err := s.withSession(profileID, sessionID, func(e *quizEntry) error {
		// A completed session whose attempt failed to store accepts Next
		// again so the insert can be retried.
		unsaved := e.session.State() == quiz.StateComplete && e.pending != nil && !e.saving
		if !unsaved {
			if err := e.session.Next(); err != nil {
				return quizError(err)
			}
			if e.session.State() == quiz.StateComplete && !e.recorded && e.pending == nil {
				a, err := e.session.Attempt(s.clock.now())
				if err != nil {
					return errors.NewInternalError(err)
				}
				e.pending = &a
			}
		}
		if e.pending != nil && !e.saving {
			e.saving = true
			entry, attempt = e, *e.pending
		}
		snap = e.session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &snap, nil
	}

	_, err = s.attemptRepo.Insert(ctx, attempt)

	s.mu.Lock()
	entry.saving = false
	if err == nil {
		entry.pending = nil
		entry.recorded = true
	}
	s.mu.Unlock()

	if err != nil {
		log.Error("failed to record quiz attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("quiz completed: session=%s score=%d/%d xp=%d", sessionID, attempt.Score, attempt.TotalQuestions, attempt.XPEarned)
	return &snap, nil
}

func (s *quizService) RetryQuiz(ctx context.Context, profileID int64, sessionID string) (*quiz.Snapshot, error) {
	var snap quiz.Snapshot
	err := s.withSession(profileID, sessionID, func(e *quizEntry) error {
		if e.saving {
			return errors.NewConflictError("quiz attempt is still being saved")
		}
		e.session.Retry(s.clock.now())
		e.pending = nil
		e.recorded = false
		snap = e.session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *quizService) ListAttempts(ctx context.Context, profileID int64) ([]models.QuizAttempt, error) {
	attempts, err := s.attemptRepo.ListByProfile(ctx, profileID, 0)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list quiz attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	return attempts, nil
}
