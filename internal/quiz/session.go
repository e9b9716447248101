// Package quiz runs a multiple-choice quiz over a fixed list of questions.
package quiz

import (
	"errors"
	"math"
	"time"

	"github.com/vytor/ncertflash/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrInvalidOption     = errors.New("option out of range")
	ErrNoQuestions       = errors.New("quiz has no questions")
)

// State is the position of a session in the answer loop.
type State string

const (
	StateAnswering  State = "answering"
	StateExplaining State = "explaining"
	StateComplete   State = "complete"
)

const (
	// StreakBonusThreshold is the streak at which correct answers earn bonus XP.
	StreakBonusThreshold = 3
	streakBonusRate      = 0.5
)

// CheckResult is the outcome of checking the selected option.
type CheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	XPGained      int    `json:"xp_gained"`
	StreakBonus   int    `json:"streak_bonus"`
	Streak        int    `json:"streak"`
}

// Session holds the progress of one learner through a quiz. It is not safe
// for concurrent use.
type Session struct {
	ID        string
	ProfileID int64
	ChapterID int64
	Questions []models.Question
	StartedAt time.Time

	state    State
	index    int
	selected *int
	answers  []int
	score    int
	xp       int
	streak   int
}

// NewSession starts a session at the first question.
func NewSession(id string, profileID, chapterID int64, questions []models.Question, now time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		ID:        id,
		ProfileID: profileID,
		ChapterID: chapterID,
		Questions: questions,
	}
	s.reset(now)
	return s, nil
}

func (s *Session) reset(now time.Time) {
	s.state = StateAnswering
	s.index = 0
	s.selected = nil
	s.answers = make([]int, len(s.Questions))
	for i := range s.answers {
		s.answers[i] = -1
	}
	s.score = 0
	s.xp = 0
	s.streak = 0
	s.StartedAt = now
}

// Select picks an option for the current question. It may be called again
// to change the selection until the answer is checked.
func (s *Session) Select(option int) error {
	if s.state != StateAnswering {
		return ErrInvalidTransition
	}
	q := s.Questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}
	s.selected = &option
	return nil
}

// Check grades the selected option and moves to the explanation.
func (s *Session) Check() (CheckResult, error) {
	if s.state != StateAnswering || s.selected == nil {
		return CheckResult{}, ErrInvalidTransition
	}
	q := s.Questions[s.index]
	selected := *s.selected
	correct := selected == q.CorrectAnswer

	s.answers[s.index] = selected
	if correct {
		s.streak++
		s.score++
	} else {
		s.streak = 0
	}

	gained, bonus := XPForAnswer(q.XPReward, correct, s.streak)
	s.xp += gained
	s.state = StateExplaining

	return CheckResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		XPGained:      gained,
		StreakBonus:   bonus,
		Streak:        s.streak,
	}, nil
}

// Next advances past the explanation, completing the quiz after the last question.
func (s *Session) Next() error {
	if s.state != StateExplaining {
		return ErrInvalidTransition
	}
	if s.index < len(s.Questions)-1 {
		s.index++
		s.selected = nil
		s.state = StateAnswering
		return nil
	}
	s.state = StateComplete
	return nil
}

// Retry restarts the quiz from the first question with a clean score.
func (s *Session) Retry(now time.Time) {
	s.reset(now)
}

// XPForAnswer returns the XP for one answer and the streak bonus included in it.
// streak is the streak after the answer was graded.
func XPForAnswer(reward int, correct bool, streak int) (gained, bonus int) {
	if !correct {
		return 0, 0
	}
	if streak >= StreakBonusThreshold {
		bonus = int(math.Floor(float64(reward) * streakBonusRate))
	}
	return reward + bonus, bonus
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID             string           `json:"id"`
	ChapterID      int64            `json:"chapter_id"`
	State          State            `json:"state"`
	CurrentIndex   int              `json:"current_index"`
	TotalQuestions int              `json:"total_questions"`
	Question       *models.Question `json:"question,omitempty"`
	Selected       *int             `json:"selected"`
	Answers        []int            `json:"answers"`
	Score          int              `json:"score"`
	XPEarned       int              `json:"xp_earned"`
	Streak         int              `json:"streak"`
	Percentage     int              `json:"percentage"`
	Grade          string           `json:"grade,omitempty"`
}

// Snapshot returns the current view. While answering, the correct answer and
// explanation of the current question are withheld.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:             s.ID,
		ChapterID:      s.ChapterID,
		State:          s.state,
		CurrentIndex:   s.index,
		TotalQuestions: len(s.Questions),
		Answers:        append([]int(nil), s.answers...),
		Score:          s.score,
		XPEarned:       s.xp,
		Streak:         s.streak,
		Percentage:     s.Percentage(),
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	if s.state != StateComplete {
		q := s.Questions[s.index]
		if s.state == StateAnswering {
			q.CorrectAnswer = -1
			q.Explanation = ""
		}
		snap.Question = &q
	} else {
		snap.Grade = Grade(snap.Percentage)
	}
	return snap
}

func (s *Session) State() State { return s.state }
func (s *Session) Score() int   { return s.score }
func (s *Session) XP() int      { return s.xp }
func (s *Session) Streak() int  { return s.streak }

// Percentage is the rounded share of correct answers over all questions.
func (s *Session) Percentage() int {
	return int(math.Round(float64(s.score) / float64(len(s.Questions)) * 100))
}

// Attempt summarises a completed session for storage.
func (s *Session) Attempt(now time.Time) (models.QuizAttempt, error) {
	if s.state != StateComplete {
		return models.QuizAttempt{}, ErrInvalidTransition
	}
	return models.QuizAttempt{
		ProfileID:       s.ProfileID,
		ChapterID:       s.ChapterID,
		Score:           s.score,
		TotalQuestions:  len(s.Questions),
		Percentage:      s.Percentage(),
		XPEarned:        s.xp,
		DurationSeconds: int(now.Sub(s.StartedAt).Seconds()),
		CompletedAt:     now,
	}, nil
}

// Grade maps a percentage onto a letter grade.
func Grade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	default:
		return "D"
	}
}
