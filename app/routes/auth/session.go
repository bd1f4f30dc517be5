package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-portal/app/models"
)

// SessionCookie is the cookie that carries the signed session token.
const SessionCookie = "session"

// BindSession reads the session cookie and turns it into a Session value.
// A missing cookie returns (nil, nil): no session is a normal state, not an
// error. A cookie that fails verification returns (nil, err) so callers can
// tell the two apart; most treat both as unauthenticated.
func (a *Auth) BindSession(c *fiber.Ctx) (*models.Session, error) {
	raw := c.Cookies(SessionCookie)
	if raw == "" {
		return nil, nil
	}

	// Some clients stored the value bearer-style.
	raw = strings.TrimPrefix(raw, "Bearer ")

	claims, err := a.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  role,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// CurrentSession returns the session the middleware attached to the request,
// or nil outside guarded routes.
func CurrentSession(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals("session").(*models.Session)
	return sess
}

func (a *Auth) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(a.Tokens.TTL()),
		MaxAge:   int(a.Tokens.TTL().Seconds()),
		Path:     "/",
		HTTPOnly: true,
		Secure:   a.SecureCookies,
		SameSite: "Lax",
	})
}

func (a *Auth) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
		Secure:   a.SecureCookies,
		SameSite: "Lax",
	})
}
