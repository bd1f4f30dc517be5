package models

import "fmt"

// Role defines the possible roles a user can hold.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole validates a raw role string against the closed set of roles.
// An empty string defaults to student.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, "":
		return RoleStudent, nil
	case RoleTeacher:
		return RoleTeacher, nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}
