package models

import "time"

type Flashcard struct {
	ID            int64      `json:"id"`
	ProfileID     int64      `json:"profile_id"`
	Front         string     `json:"front"`
	Back          string     `json:"back"`
	Subject       string     `json:"subject"`
	Chapter       string     `json:"chapter"`
	Difficulty    string     `json:"difficulty"`
	EaseFactor    float64    `json:"ease_factor"`
	Streak        int        `json:"streak"`
	LastReviewed  *time.Time `json:"last_reviewed"`
	NextReview    time.Time  `json:"next_review"`
	TimesReviewed int        `json:"times_reviewed"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ReviewHistory struct {
	ID          int64     `json:"id"`
	FlashcardID int64     `json:"flashcard_id"`
	ProfileID   int64     `json:"profile_id"`
	Rating      string    `json:"rating"`
	Quality     int       `json:"quality"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

// Flashcard list filters.
const (
	FilterAll = "all"
	FilterDue = "due"
	FilterNew = "new"
)

type FlashcardFilter struct {
	ProfileID int64
	// Filter is one of FilterAll, FilterDue or FilterNew. Empty means all.
	Filter  string
	Subject string
	// Now is the reference time for FilterDue.
	Now    time.Time
	Limit  int
	Offset int
}
