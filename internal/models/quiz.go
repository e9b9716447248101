package models

import "time"

type Question struct {
	ID            int64    `json:"id"`
	ChapterID     int64    `json:"chapter_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	BloomLevel    string   `json:"bloom_level"`
	Difficulty    string   `json:"difficulty"`
	XPReward      int      `json:"xp_reward"`
	// Source is "seed", "manual" or "generated".
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizAttempt struct {
	ID              int64     `json:"id"`
	ProfileID       int64     `json:"profile_id"`
	ChapterID       int64     `json:"chapter_id"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	Percentage      int       `json:"percentage"`
	XPEarned        int       `json:"xp_earned"`
	DurationSeconds int       `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}
