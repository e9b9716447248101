package models

import "time"

type Profile struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	ClassLevel int       `json:"class_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsTeacher reports whether the profile may manage classrooms.
func (p Profile) IsTeacher() bool {
	return p.Role == RoleTeacher
}
