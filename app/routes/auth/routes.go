package auth

import (
	"github.com/gofiber/fiber/v2"

	"school-portal/app/models"
)

// Auth bundles the pieces the auth endpoints and middleware compose: the
// credential store, the token service and cookie policy.
type Auth struct {
	Store         UserStore
	Tokens        *TokenService
	BcryptCost    int
	SecureCookies bool
}

func SetupAuthRoutes(app *fiber.App, a *Auth) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", a.RegisterAPI)
	auth.Post("/login", a.LoginAPI)
	auth.Post("/logout", a.LogoutAPI)

	// Protected routes
	auth.Get("/session", a.AuthMiddleware, a.SessionAPI)
}

// AuthMiddleware validates the session cookie and attaches the session to
// the request context. Missing and invalid sessions are both rejected the
// same way.
func (a *Auth) AuthMiddleware(c *fiber.Ctx) error {
	sess, err := a.BindSession(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	c.Locals("session", sess)
	return c.Next()
}

// RequireRole rejects authenticated requests whose session lacks the given
// role. Run it after AuthMiddleware.
func (a *Auth) RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		if sess.Role != role {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		return c.Next()
	}
}
