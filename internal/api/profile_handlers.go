package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/services"
)

type profilesResponse struct {
	Profiles []models.Profile `json:"profiles"`
	// CurrentID is the profile selected by cookie or header, zero if none.
	CurrentID int64 `json:"current_id,omitempty"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := profilesResponse{Profiles: profiles}
	if raw, _ := profileIDFromRequest(r); raw != "" {
		for _, p := range profiles {
			if formatID(p.ID) == raw {
				resp.CurrentID = p.ID
				break
			}
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProfileInput
	if err := decodeJSON(r, &input, false); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("profile selected: id=%d", id)
	s.setProfileCookie(w, id)
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if raw, fromHeader := profileIDFromRequest(r); !fromHeader && raw == formatID(id) {
		clearProfileCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, profileFromContext(r.Context()))
}
