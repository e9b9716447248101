package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// model calls carry their own deadline
		r.With(s.profileMiddleware).Post("/tutor/chat", s.handleTutorChat)

		r.Group(func(r chi.Router) {
			if s.RequestTimeout > 0 {
				r.Use(timeoutMiddleware(s.RequestTimeout))
			}

			r.Get("/profiles", s.handleProfiles)
			r.Post("/profiles", s.handleCreateProfile)
			r.Post("/profiles/{id}/select", s.handleSelectProfile)
			r.Post("/profiles/{id}/delete", s.handleDeleteProfile)

			r.Get("/assessment/questions", s.handleAssessmentQuestions)
			r.Get("/curriculum/classes", s.handleClasses)
			r.Get("/curriculum/classes/{class}/subjects", s.handleSubjects)
			r.Get("/curriculum/subjects/{id}/chapters", s.handleChapters)
			r.Get("/tutor/health", s.handleTutorHealth)

			r.Group(func(r chi.Router) {
				r.Use(s.profileMiddleware)

				r.Get("/profile", s.handleCurrentProfile)

				r.Get("/flashcards", s.handleFlashcards)
				r.Post("/flashcards", s.handleCreateFlashcard)
				r.Get("/flashcards/next", s.handleNextFlashcard)
				r.Get("/flashcards/stats", s.handleFlashcardStats)
				r.Post("/flashcards/{id}/review", s.handleReviewFlashcard)

				r.Post("/assessment", s.handleSubmitAssessment)
				r.Get("/assessment", s.handleLearningStyle)

				r.Get("/classrooms", s.handleClassrooms)
				r.Post("/classrooms", s.handleCreateClassroom)
				r.Post("/classrooms/join", s.handleJoinClassroom)
				r.Get("/classrooms/{id}", s.handleClassroomInsights)
				r.Get("/teacher/analytics", s.handleTeacherAnalytics)

				r.Post("/quiz", s.handleStartQuiz)
				r.Get("/quiz/attempts", s.handleQuizAttempts)
				r.Get("/quiz/{session}", s.handleGetQuiz)
				r.Post("/quiz/{session}/select", s.handleSelectOption)
				r.Post("/quiz/{session}/check", s.handleCheckAnswer)
				r.Post("/quiz/{session}/next", s.handleNextQuestion)
				r.Post("/quiz/{session}/retry", s.handleRetryQuiz)

				r.Post("/chapters/{id}/questions/generate", s.handleGenerateQuestions)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed(r))
	})
	return r
}
