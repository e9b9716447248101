package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/ncertflash/internal/errors"
)

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.CurriculumService.ListClasses(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"classes": classes})
}

// handleSubjects takes the class level (1-12), not the class row id.
func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "class")
	level, err := strconv.Atoi(raw)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(fmt.Sprintf("invalid class: %q", raw)))
		return
	}

	subjects, err := s.CurriculumService.ListSubjects(r.Context(), level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"subjects": subjects})
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	chapters, err := s.CurriculumService.ListChapters(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"chapters": chapters})
}
