package grades

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

func CreateGradeAPI(c *fiber.Ctx, store Store) error {
	type GradeRequest struct {
		StudentEmail string  `json:"studentEmail"`
		Course       string  `json:"course"`
		Grade        float64 `json:"grade"`
	}

	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.StudentEmail == "" || req.Course == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student email and course are required"})
	}

	student, err := store.GetUserByEmail(auth.NormalizeEmail(req.StudentEmail))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Failed to look up student: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save grade"})
	}
	if student.Role != models.RoleStudent {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	sess := auth.CurrentSession(c)
	grade := &models.Grade{
		ID:        uuid.NewString(),
		StudentID: student.ID,
		TeacherID: sess.ID,
		Course:    req.Course,
		Grade:     req.Grade,
	}

	if err := store.InsertGrade(grade); err != nil {
		log.Printf("Failed to insert grade: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save grade"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"grade":   grade,
	})
}

// ListGradesAPI returns the caller's grades: the ones they recorded for
// teachers, their own for students.
func ListGradesAPI(c *fiber.Ctx, store Store) error {
	sess := auth.CurrentSession(c)

	var (
		grades []*models.Grade
		err    error
	)
	if sess.Role == models.RoleTeacher {
		grades, err = store.GradesByTeacher(sess.ID)
	} else {
		grades, err = store.GradesByStudent(sess.ID)
	}
	if err != nil {
		log.Printf("Failed to fetch grades: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(fiber.Map{
		"grades": grades,
		"count":  len(grades),
	})
}
