package absences

import (
	"github.com/gofiber/fiber/v2"

	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

type Store interface {
	GetUserByEmail(email string) (*models.User, error)
	InsertAbsence(absence *models.Absence) error
	AbsencesByStudent(studentID string) ([]*models.Absence, error)
	AbsencesByTeacher(teacherID string) ([]*models.Absence, error)
}

func SetupAbsencesRoutes(app *fiber.App, store Store, a *auth.Auth) {
	api := app.Group("/api/absences")
	api.Use(a.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return ListAbsencesAPI(c, store) })
	api.Post("/", a.RequireRole(models.RoleTeacher), func(c *fiber.Ctx) error { return CreateAbsenceAPI(c, store) })
}
