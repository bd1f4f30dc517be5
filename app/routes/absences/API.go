package absences

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

func CreateAbsenceAPI(c *fiber.Ctx, store Store) error {
	type AbsenceRequest struct {
		StudentEmail string `json:"studentEmail"`
		Course       string `json:"course"`
		Date         string `json:"date"`
	}

	var req AbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.StudentEmail == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student email is required"})
	}

	// Absent date defaults to today.
	date := time.Now()
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
	}

	student, err := store.GetUserByEmail(auth.NormalizeEmail(req.StudentEmail))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Failed to look up student: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save absence"})
	}
	if student.Role != models.RoleStudent {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	sess := auth.CurrentSession(c)
	absence := &models.Absence{
		ID:        uuid.NewString(),
		StudentID: student.ID,
		TeacherID: sess.ID,
		Course:    req.Course,
		Date:      date,
	}

	if err := store.InsertAbsence(absence); err != nil {
		log.Printf("Failed to insert absence: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save absence"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"absence": absence,
	})
}

// ListAbsencesAPI feeds the attendance view: students see their own
// absences, teachers see the ones they recorded.
func ListAbsencesAPI(c *fiber.Ctx, store Store) error {
	sess := auth.CurrentSession(c)

	var (
		absences []*models.Absence
		err      error
	)
	if sess.Role == models.RoleTeacher {
		absences, err = store.AbsencesByTeacher(sess.ID)
	} else {
		absences, err = store.AbsencesByStudent(sess.ID)
	}
	if err != nil {
		log.Printf("Failed to fetch absences: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch absences"})
	}

	return c.JSON(fiber.Map{
		"absences": absences,
		"count":    len(absences),
	})
}
