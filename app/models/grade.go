package models

import "time"

// Grade is a mark a teacher recorded for a student in a course.
type Grade struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	TeacherID string    `json:"teacher_id"`
	Course    string    `json:"course"`
	Grade     float64   `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
}
