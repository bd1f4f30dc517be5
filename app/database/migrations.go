package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. Every statement
// is idempotent so the server can run this on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createUsersTable(db); err != nil {
		return err
	}
	if err := createGradesTable(db); err != nil {
		return err
	}
	if err := createAbsencesTable(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createUsersTable(db *sql.DB) error {
	// The unique index on email is what serializes concurrent registrations
	// of the same address; the application never takes a lock for it.
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			role VARCHAR(10) NOT NULL CHECK (role IN ('student', 'teacher')),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for users table: %v", err)
		return err
	}
	return nil
}

func createGradesTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES users(id),
			teacher_id UUID NOT NULL REFERENCES users(id),
			course TEXT NOT NULL,
			grade NUMERIC(5,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS grades_student_id_idx ON grades (student_id);
		CREATE INDEX IF NOT EXISTS grades_teacher_id_idx ON grades (teacher_id);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for grades table: %v", err)
		return err
	}
	return nil
}

func createAbsencesTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS absences (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES users(id),
			teacher_id UUID NOT NULL REFERENCES users(id),
			course TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS absences_student_id_idx ON absences (student_id);
		CREATE INDEX IF NOT EXISTS absences_teacher_id_idx ON absences (teacher_id);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for absences table: %v", err)
		return err
	}
	return nil
}
