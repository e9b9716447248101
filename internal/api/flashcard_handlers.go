package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/services"
)

type reviewRequest struct {
	Rating      string  `json:"rating" validate:"required"`
	TimeSeconds float64 `json:"time_seconds" validate:"gte=0"`
}

type nextFlashcardResponse struct {
	Flashcard *models.Flashcard `json:"flashcard"`
	Due       bool              `json:"due"`
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	q := r.URL.Query()

	cards, err := s.FlashcardService.ListFlashcards(r.Context(), profile.ID, q.Get("filter"), q.Get("subject"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"flashcards": cards})
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var input services.CreateFlashcardInput
	if err := decodeJSON(r, &input, false); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.CreateFlashcard(r.Context(), profile.ID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleNextFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	card, err := s.FlashcardService.GetNextFlashcard(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nextFlashcardResponse{Flashcard: card, Due: card != nil})
}

func (s *Server) handleFlashcardStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	stats, err := s.FlashcardService.GetStats(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	rating, err := flashcard.ParseRating(req.Rating)
	if err != nil {
		log.Warn("invalid rating for flashcard %d: %q", id, req.Rating)
		handleError(w, r, errors.NewValidationError("rating", "must be one of again, hard, good, easy"))
		return
	}

	result, err := s.FlashcardService.ReviewFlashcard(r.Context(), id, profile.ID, rating, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
