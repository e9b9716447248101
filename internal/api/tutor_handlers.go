package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/services"
)

func (s *Server) handleTutorChat(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var input services.ChatInput
	if err := decodeJSON(r, &input, false); err != nil {
		handleError(w, r, err)
		return
	}

	reply, err := s.TutorService.Chat(r.Context(), profile.ID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reply)
}

func (s *Server) handleTutorHealth(w http.ResponseWriter, r *http.Request) {
	health := s.TutorService.Health(r.Context())
	if !health.Available {
		logger.FromContext(r.Context()).Warn("tutor model unavailable: %s", health.Error)
	}
	// the tutor degrades to fallback replies, so an offline model is still a 200
	writeJSON(w, r, http.StatusOK, health)
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var input services.GenerateQuestionsInput
	if err := decodeJSON(r, &input, true); err != nil {
		handleError(w, r, err)
		return
	}

	req, err := s.QuestionService.RequestGeneration(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]any{
		"status":  "queued",
		"request": req,
	})
}
