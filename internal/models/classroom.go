package models

import (
	"time"

	"github.com/vytor/ncertflash/internal/vark"
)

type Classroom struct {
	ID          int64     `json:"id"`
	TeacherID   int64     `json:"teacher_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClassLevel  int       `json:"class_level"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClassroomSummary is a classroom with its enrollment count.
type ClassroomSummary struct {
	Classroom
	StudentCount int `json:"student_count"`
}

type Enrollment struct {
	ClassroomID int64     `json:"classroom_id"`
	StudentID   int64     `json:"student_id"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// ClassroomStudent is an enrolled student with their dominant style, if assessed.
type ClassroomStudent struct {
	ProfileID     int64      `json:"profile_id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	DominantStyle vark.Style `json:"dominant_style,omitempty"`
	EnrolledAt    time.Time  `json:"enrolled_at"`
}

type ClassroomInsights struct {
	Classroom    Classroom          `json:"classroom"`
	Students     []ClassroomStudent `json:"students"`
	Distribution vark.Distribution  `json:"distribution"`
}

type TeacherAnalytics struct {
	Classrooms   []ClassroomSummary `json:"classrooms"`
	Distribution vark.Distribution  `json:"distribution"`
}
