package grades

import (
	"github.com/gofiber/fiber/v2"

	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

// Store is what the grade endpoints need from storage. app/database.Store
// implements it against Postgres.
type Store interface {
	GetUserByEmail(email string) (*models.User, error)
	InsertGrade(grade *models.Grade) error
	GradesByStudent(studentID string) ([]*models.Grade, error)
	GradesByTeacher(teacherID string) ([]*models.Grade, error)
}

func SetupGradesRoutes(app *fiber.App, store Store, a *auth.Auth) {
	api := app.Group("/api/grades")
	api.Use(a.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return ListGradesAPI(c, store) })
	api.Post("/", a.RequireRole(models.RoleTeacher), func(c *fiber.Ctx) error { return CreateGradeAPI(c, store) })
}
