package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/vark"
)

type assessmentRequest struct {
	Answers []vark.Style `json:"answers" validate:"required,min=1"`
}

func (s *Server) handleAssessmentQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"questions": s.AssessmentService.Questions(),
		"styles":    vark.Styles,
	})
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req assessmentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.AssessmentService.SubmitAssessment(r.Context(), profile.ID, req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleLearningStyle(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	style, err := s.AssessmentService.GetLearningStyle(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, style)
}
