package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/services"
)

type joinClassroomRequest struct {
	Code string `json:"code" validate:"required"`
}

func (s *Server) handleClassrooms(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	classrooms, err := s.ClassroomService.ListClassrooms(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"classrooms": classrooms})
}

func (s *Server) handleCreateClassroom(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var input services.CreateClassroomInput
	if err := decodeJSON(r, &input, false); err != nil {
		handleError(w, r, err)
		return
	}

	classroom, err := s.ClassroomService.CreateClassroom(r.Context(), profile.ID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, classroom)
}

func (s *Server) handleJoinClassroom(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req joinClassroomRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	classroom, err := s.ClassroomService.JoinClassroom(r.Context(), profile.ID, req.Code)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, classroom)
}

func (s *Server) handleClassroomInsights(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	insights, err := s.ClassroomService.GetInsights(r.Context(), profile.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, insights)
}

func (s *Server) handleTeacherAnalytics(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	analytics, err := s.ClassroomService.GetTeacherAnalytics(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, analytics)
}
