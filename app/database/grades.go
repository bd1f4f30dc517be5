package database

import (
	"database/sql"
	"time"

	"school-portal/app/models"
)

func InsertGrade(db *sql.DB, grade *models.Grade) error {
	query := `INSERT INTO grades (id, student_id, teacher_id, course, grade, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	grade.CreatedAt = time.Now()
	_, err := db.Exec(query, grade.ID, grade.StudentID, grade.TeacherID, grade.Course, grade.Grade, grade.CreatedAt)
	return err
}

func GetGradesByStudent(db *sql.DB, studentID string) ([]*models.Grade, error) {
	query := `SELECT id, student_id, teacher_id, course, grade, created_at
			  FROM grades WHERE student_id = $1 ORDER BY created_at DESC`
	return scanGrades(db.Query(query, studentID))
}

func GetGradesByTeacher(db *sql.DB, teacherID string) ([]*models.Grade, error) {
	query := `SELECT id, student_id, teacher_id, course, grade, created_at
			  FROM grades WHERE teacher_id = $1 ORDER BY created_at DESC`
	return scanGrades(db.Query(query, teacherID))
}

func scanGrades(rows *sql.Rows, err error) ([]*models.Grade, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.TeacherID, &g.Course, &g.Grade, &g.CreatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, &g)
	}
	return grades, rows.Err()
}
