package models

type FlashcardStat struct {
	TotalCards    int     `json:"total_cards"`
	CardsDue      int     `json:"cards_due"`
	CardsNew      int     `json:"cards_new"`
	CardsMastered int     `json:"cards_mastered"`
	AvgEaseFactor float64 `json:"avg_ease_factor"`
	TotalReviews  int     `json:"total_reviews"`
}

// SubjectCount is the number of cards per subject.
type SubjectCount struct {
	Subject string `json:"subject"`
	Cards   int    `json:"cards"`
	Due     int    `json:"due"`
}
