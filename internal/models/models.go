package models

// Difficulty labels for flashcards and questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Profile roles.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// ValidDifficulty reports whether d is a known difficulty label.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
