package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

// Store adapts the raw query functions to the interfaces the route packages
// consume, translating driver errors into the sentinels callers match on.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	user, err := GetUserByEmail(s.DB, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	return user, err
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	user, err := GetUserByID(s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	return user, err
}

func (s *Store) CreateUser(user *models.User) error {
	err := CreateUser(s.DB, user)
	if isUniqueViolation(err) {
		return auth.ErrDuplicateEmail
	}
	return err
}

func (s *Store) InsertGrade(grade *models.Grade) error {
	return InsertGrade(s.DB, grade)
}

func (s *Store) GradesByStudent(studentID string) ([]*models.Grade, error) {
	return GetGradesByStudent(s.DB, studentID)
}

func (s *Store) GradesByTeacher(teacherID string) ([]*models.Grade, error) {
	return GetGradesByTeacher(s.DB, teacherID)
}

func (s *Store) InsertAbsence(absence *models.Absence) error {
	return InsertAbsence(s.DB, absence)
}

func (s *Store) AbsencesByStudent(studentID string) ([]*models.Absence, error) {
	return GetAbsencesByStudent(s.DB, studentID)
}

func (s *Store) AbsencesByTeacher(teacherID string) ([]*models.Absence, error) {
	return GetAbsencesByTeacher(s.DB, teacherID)
}

// isUniqueViolation reports whether err is Postgres error 23505, the code
// raised when an insert hits a unique index.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
