package auth

import (
	"errors"

	"school-portal/app/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the minimal credential store the auth core needs. The
// Postgres implementation lives in app/database; tests plug in an in-memory
// version.
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
}
