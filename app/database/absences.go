package database

import (
	"database/sql"
	"time"

	"school-portal/app/models"
)

func InsertAbsence(db *sql.DB, absence *models.Absence) error {
	query := `INSERT INTO absences (id, student_id, teacher_id, course, date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	absence.CreatedAt = time.Now()
	_, err := db.Exec(query, absence.ID, absence.StudentID, absence.TeacherID, absence.Course, absence.Date, absence.CreatedAt)
	return err
}

func GetAbsencesByStudent(db *sql.DB, studentID string) ([]*models.Absence, error) {
	query := `SELECT id, student_id, teacher_id, course, date, created_at
			  FROM absences WHERE student_id = $1 ORDER BY date DESC`
	return scanAbsences(db.Query(query, studentID))
}

func GetAbsencesByTeacher(db *sql.DB, teacherID string) ([]*models.Absence, error) {
	query := `SELECT id, student_id, teacher_id, course, date, created_at
			  FROM absences WHERE teacher_id = $1 ORDER BY date DESC`
	return scanAbsences(db.Query(query, teacherID))
}

func scanAbsences(rows *sql.Rows, err error) ([]*models.Absence, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var absences []*models.Absence
	for rows.Next() {
		var a models.Absence
		if err := rows.Scan(&a.ID, &a.StudentID, &a.TeacherID, &a.Course, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		absences = append(absences, &a)
	}
	return absences, rows.Err()
}
