package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type startQuizRequest struct {
	ChapterID int64 `json:"chapter_id" validate:"required,gt=0"`
	Length    int   `json:"length" validate:"gte=0"`
}

type selectOptionRequest struct {
	Option *int `json:"option" validate:"required"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req startQuizRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.QuizService.StartQuiz(r.Context(), profile.ID, req.ChapterID, req.Length)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, snap)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	snap, err := s.QuizService.GetQuiz(r.Context(), profile.ID, chi.URLParam(r, "session"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req selectOptionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.QuizService.SelectOption(r.Context(), profile.ID, chi.URLParam(r, "session"), *req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	outcome, err := s.QuizService.CheckAnswer(r.Context(), profile.ID, chi.URLParam(r, "session"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	snap, err := s.QuizService.NextQuestion(r.Context(), profile.ID, chi.URLParam(r, "session"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleRetryQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	snap, err := s.QuizService.RetryQuiz(r.Context(), profile.ID, chi.URLParam(r, "session"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleQuizAttempts(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	attempts, err := s.QuizService.ListAttempts(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"attempts": attempts})
}
