package models

import (
	"time"

	"github.com/vytor/ncertflash/internal/vark"
)

// LearningStyle is a profile's latest VARK assessment result.
type LearningStyle struct {
	ProfileID     int64      `json:"profile_id"`
	Visual        int        `json:"visual"`
	Auditory      int        `json:"auditory"`
	Reading       int        `json:"reading"`
	Kinesthetic   int        `json:"kinesthetic"`
	DominantStyle vark.Style `json:"dominant_style"`
	AssessedAt    time.Time  `json:"assessed_at"`
}
