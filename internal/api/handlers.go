package api

import (
	"context"
	"time"

	"github.com/vytor/ncertflash/internal/services"
)

// Pinger is satisfied by *sql.DB and is used by the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB                Pinger
	ProfileService    services.ProfileService
	FlashcardService  services.FlashcardService
	AssessmentService services.AssessmentService
	ClassroomService  services.ClassroomService
	CurriculumService services.CurriculumService
	QuizService       services.QuizService
	TutorService      services.TutorService
	QuestionService   services.QuestionService
	// RequestTimeout bounds every route except the tutor chat. Zero disables it.
	RequestTimeout time.Duration
	// SecureCookies marks the profile cookie Secure when served over HTTPS.
	SecureCookies bool
}
