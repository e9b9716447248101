package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/ncertflash/internal/models"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Lookups return (nil, nil) when the record does not exist.

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, profile models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Count(ctx context.Context, filter models.FlashcardFilter) (int, error)
	// NextDue returns the due card with the earliest next review.
	NextDue(ctx context.Context, profileID int64, now time.Time) (*models.Flashcard, error)
	// UpdateSchedule writes the scheduling fields of card, keyed by id and owner.
	UpdateSchedule(ctx context.Context, card models.Flashcard) error
	InsertReviewHistory(ctx context.Context, review models.ReviewHistory) error
	Stats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error)
	SubjectCounts(ctx context.Context, profileID int64, now time.Time) ([]models.SubjectCount, error)
}

// LearningStyleRepository handles VARK assessment results
type LearningStyleRepository interface {
	Upsert(ctx context.Context, style models.LearningStyle) error
	Get(ctx context.Context, profileID int64) (*models.LearningStyle, error)
}

// ClassroomRepository handles classrooms and enrollments
type ClassroomRepository interface {
	Create(ctx context.Context, classroom models.Classroom) (int64, error)
	Get(ctx context.Context, id int64) (*models.Classroom, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Classroom, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassroomSummary, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.ClassroomSummary, error)
	Enroll(ctx context.Context, enrollment models.Enrollment) error
	Students(ctx context.Context, classroomID int64) ([]models.ClassroomStudent, error)
	// TeacherStudents returns each student enrolled in any of the teacher's
	// classrooms once.
	TeacherStudents(ctx context.Context, teacherID int64) ([]models.ClassroomStudent, error)
}

// CurriculumRepository handles classes, subjects and chapters
type CurriculumRepository interface {
	UpsertClass(ctx context.Context, class models.Class) (int64, error)
	UpsertSubject(ctx context.Context, subject models.Subject) (int64, error)
	UpsertChapter(ctx context.Context, chapter models.Chapter) (int64, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListSubjects(ctx context.Context, classLevel int) ([]models.Subject, error)
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	ListChapters(ctx context.Context, subjectID int64) ([]models.Chapter, error)
	GetChapter(ctx context.Context, id int64) (*models.Chapter, error)
}

// QuestionRepository handles quiz questions
type QuestionRepository interface {
	// Upsert inserts a question or updates the one with the same chapter and text.
	Upsert(ctx context.Context, question models.Question) (int64, error)
	ListByChapter(ctx context.Context, chapterID int64, limit int) ([]models.Question, error)
	CountByChapter(ctx context.Context, chapterID int64) (int, error)
}

// QuizAttemptRepository handles completed quiz attempts
type QuizAttemptRepository interface {
	Insert(ctx context.Context, attempt models.QuizAttempt) (int64, error)
	ListByProfile(ctx context.Context, profileID int64, limit int) ([]models.QuizAttempt, error)
}

// ChatRepository handles tutor chat sessions and messages
type ChatRepository interface {
	CreateSession(ctx context.Context, session models.ChatSession) error
	GetSession(ctx context.Context, id string) (*models.ChatSession, error)
	AppendMessages(ctx context.Context, messages ...models.ChatMessage) error
	// RecentMessages returns the last limit messages in chronological order.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}
