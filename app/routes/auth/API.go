package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"school-portal/app/models"
)

func (a *Auth) RegisterAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Role must be student or teacher"})
	}

	// A hashing failure must fail the registration, never fall through.
	hashed, err := HashPassword(req.Password, a.BcryptCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Registration failed"})
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := a.Store.CreateUser(user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return c.Status(409).JSON(fiber.Map{"error": "Email already registered"})
		}
		log.Printf("Failed to create user: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Registration failed"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"userId":  user.ID,
		"role":    user.Role,
	})
}

func (a *Auth) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := a.Store.GetUserByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same answer for unknown email and wrong password.
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		log.Printf("Failed to look up user: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Login failed"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := a.Tokens.Issue(user)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Login failed"})
	}

	a.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}

// LogoutAPI clears the session cookie. A token already issued stays valid
// until it expires; there is no server-side revocation.
func (a *Auth) LogoutAPI(c *fiber.Ctx) error {
	a.clearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// SessionAPI answers with the caller's identity. The token alone proves the
// session, but the account behind it may have been deactivated since issue,
// so introspection re-checks the store before answering.
func (a *Auth) SessionAPI(c *fiber.Ctx) error {
	sess := CurrentSession(c)

	user, err := a.Store.GetUserByID(sess.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		log.Printf("Failed to look up user: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Session lookup failed"})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
