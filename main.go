package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"school-portal/app/config"
	"school-portal/app/database"
	"school-portal/app/routes/absences"
	"school-portal/app/routes/auth"
	"school-portal/app/routes/grades"
)

// customErrorHandler turns fiber errors into the JSON envelope every
// endpoint uses. Unexpected errors stay a generic 500; internals are never
// sent to the client.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func main() {
	cfg := config.Load()

	db := config.InitDB(cfg)
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	store := database.NewStore(db)
	authCore := &auth.Auth{
		Store:         store,
		Tokens:        auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL),
		BcryptCost:    cfg.BcryptCost,
		SecureCookies: cfg.Production,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app, authCore)
	grades.SetupGradesRoutes(app, store, authCore)
	absences.SetupAbsencesRoutes(app, store, authCore)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	log.Println("Server starting on :" + cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
